package controllers

import (
	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []any{
		NewPublishController,
		NewBranchController,
		NewOpenController,
		NewCopyURLController,
		NewStatusController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	publishController *PublishController,
	branchController *BranchController,
	openController *OpenController,
	copyURLController *CopyURLController,
	statusController *StatusController,
) *[]entities.Controller {
	return &[]entities.Controller{
		publishController,
		branchController,
		openController,
		copyURLController,
		statusController,
	}
}
