package entities

import (
	"time"

	"go.uber.org/dig"
)

// Clock returns the current time. Sessions use it for timestamp-based fallback names.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time { return time.Now() }

// RegisterProviders registers all entity providers with the DIG container.
// Settings are not registered here: they depend on the --config flag and are
// loaded by the controllers layer.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() Clock { return SystemClock })
}
