package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// PublisherFactory is a constructor function that creates a PublisherRepository from settings.
type PublisherFactory func(settings *entities.Settings) domainRepos.PublisherRepository

// MetadataFactory creates the metadata client for a backend.
type MetadataFactory func(settings entities.BackendSettings) domainRepos.MetadataRepository

// WorkspaceFactory creates the file source for a project.
type WorkspaceFactory func(settings entities.ProjectSettings) domainRepos.WorkspaceRepository

// PublisherRegistry manages all registered publisher implementations.
type PublisherRegistry struct {
	publishers map[string]PublisherFactory
}

// NewPublisherRegistry creates an empty publisher registry.
func NewPublisherRegistry() *PublisherRegistry {
	return &PublisherRegistry{
		publishers: make(map[string]PublisherFactory),
	}
}

// Register adds a publisher factory under the given name (e.g. "github").
func (r *PublisherRegistry) Register(name string, factory PublisherFactory) {
	r.publishers[name] = factory
}

// Get returns the publisher selected by settings.Provider.Type.
func (r *PublisherRegistry) Get(settings *entities.Settings) (domainRepos.PublisherRepository, error) {
	factory, ok := r.publishers[settings.Provider.Type]
	if !ok {
		return nil, fmt.Errorf(
			"unknown provider type: %q (registered: %s)",
			settings.Provider.Type, strings.Join(r.Names(), ", "),
		)
	}
	return factory(settings), nil
}

// Names returns the registered publisher names, sorted.
func (r *PublisherRegistry) Names() []string {
	names := make([]string, 0, len(r.publishers))
	for name := range r.publishers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
