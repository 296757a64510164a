package internal

import (
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// AppInternal holds everything the CLI mounts.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application context from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers in mount order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
