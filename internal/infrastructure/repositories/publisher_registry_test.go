//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repopublish/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repopublish/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/repopublish/test/infrastructure/repositorydoubles"
)

func TestPublisherRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the publisher selected by the provider type", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewPublisherRegistry()
		var received *entities.Settings
		registry.Register("github", func(settings *entities.Settings) domainRepos.PublisherRepository {
			received = settings
			return &doubles.SpyPublisherRepository{ProviderName: "github"}
		})
		settings := &entities.Settings{Provider: entities.ProviderSettings{Type: "github", Token: "tok"}}

		// when
		publisher, err := registry.Get(settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "github", publisher.Name())
		assert.Same(t, settings, received)
	})

	t.Run("should fail for an unknown provider type", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewPublisherRegistry()

		// when
		publisher, err := registry.Get(&entities.Settings{Provider: entities.ProviderSettings{Type: "svn"}})

		// then
		require.Error(t, err)
		assert.Nil(t, publisher)
		assert.Contains(t, err.Error(), `"svn"`)
	})

	t.Run("should list names sorted", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewPublisherRegistry()
		factory := func(_ *entities.Settings) domainRepos.PublisherRepository {
			return &doubles.SpyPublisherRepository{}
		}
		registry.Register("gitlab", factory)
		registry.Register("backend", factory)
		registry.Register("github", factory)

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"backend", "github", "gitlab"}, names)
	})
}
