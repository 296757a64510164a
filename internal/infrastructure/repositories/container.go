package repositories

import (
	"os"

	"go.uber.org/dig"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repopublish/internal/domain/repositories"
	"github.com/rios0rios0/repopublish/internal/infrastructure/repositories/backend"
	"github.com/rios0rios0/repopublish/internal/infrastructure/repositories/desktop"
	ghRepo "github.com/rios0rios0/repopublish/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/repopublish/internal/infrastructure/repositories/gitremote"
	glRepo "github.com/rios0rios0/repopublish/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/repopublish/internal/infrastructure/repositories/workspace"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register publisher registry with all publisher factories
	if err := container.Provide(func() *PublisherRegistry {
		reg := NewPublisherRegistry()
		reg.Register(entities.ProviderBackend, backend.NewPublisher)
		reg.Register(entities.ProviderGitHub, ghRepo.NewGitHubPublisherRepository)
		reg.Register(entities.ProviderGitLab, glRepo.NewGitLabPublisherRepository)
		reg.Register(entities.ProviderGit, gitremote.NewGitPublisherRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() MetadataFactory {
		return backend.NewMetadataRepository
	}); err != nil {
		return err
	}
	if err := container.Provide(func() WorkspaceFactory {
		return workspace.NewDirectoryWorkspaceRepository
	}); err != nil {
		return err
	}

	// UI collaborators for the terminal
	if err := container.Provide(func() domainRepos.Notifier {
		return desktop.NewLogNotifier()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.URLOpener {
		return desktop.NewBrowserURLOpener(os.Getenv("REPOPUBLISH_HEADLESS") == "true")
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.Clipboard {
		return desktop.NewSystemClipboard()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.BranchPrompter {
		return desktop.NewStdinBranchPrompter(os.Stdin, os.Stderr)
	}); err != nil {
		return err
	}

	return nil
}
