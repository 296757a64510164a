package repositories

import (
	"context"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// WorkspaceRepository supplies snapshots of the project files being edited.
type WorkspaceRepository interface {
	LoadFiles(ctx context.Context) (entities.ProjectFileSet, error)
}
