package repositories

import (
	"context"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// MetadataRepository reads and writes the per-project repository metadata
// record kept by the backend. Both operations are best-effort for callers.
type MetadataRepository interface {
	Load(ctx context.Context, projectID string) (*entities.LoadedMetadata, error)
	Patch(ctx context.Context, projectID string, patch entities.MetadataPatch) error
}
