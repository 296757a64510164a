package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []any{
		NewSessionFactory,
		NewPublishCommand,
		NewBranchCommand,
		NewRepoActionsCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *SessionFactory) Sessions {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PublishCommand) Publish {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BranchCommand) Branch {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RepoActionsCommand) RepoActions {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
