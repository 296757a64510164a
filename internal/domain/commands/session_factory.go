package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repopublish/internal/infrastructure/repositories"
)

// Sessions is the interface for opening a session from configuration.
type Sessions interface {
	Open(ctx context.Context, settings *entities.Settings) (*Session, error)
}

// SessionFactory wires a Session from settings: it resolves the publisher,
// builds the metadata client and loads the project files.
type SessionFactory struct {
	publisherRegistry *infraRepos.PublisherRegistry
	metadataFactory   infraRepos.MetadataFactory
	workspaceFactory  infraRepos.WorkspaceFactory
	clock             entities.Clock
}

// NewSessionFactory creates a new SessionFactory.
func NewSessionFactory(
	publisherRegistry *infraRepos.PublisherRegistry,
	metadataFactory infraRepos.MetadataFactory,
	workspaceFactory infraRepos.WorkspaceFactory,
	clock entities.Clock,
) *SessionFactory {
	return &SessionFactory{
		publisherRegistry: publisherRegistry,
		metadataFactory:   metadataFactory,
		workspaceFactory:  workspaceFactory,
		clock:             clock,
	}
}

// Open builds the session and fills its workspace from the project directory.
func (it *SessionFactory) Open(ctx context.Context, settings *entities.Settings) (*Session, error) {
	publisher, err := it.publisherRegistry.Get(settings)
	if err != nil {
		return nil, err
	}

	session := NewSession(ctx, SessionOptions{
		ProjectID: settings.Project.ID,
		Publisher: publisher,
		Metadata:  it.metadataFactory(settings.Backend),
		Clock:     it.clock,
	})

	files, err := it.workspaceFactory(settings.Project).LoadFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read project files: %w", err)
	}
	if !session.ReplaceFiles(files) {
		logger.Warnf("No files found in %q", settings.Project.Dir)
	}

	return session, nil
}
