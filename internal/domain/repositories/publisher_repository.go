package repositories

import (
	"context"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// PublisherRepository sends a file set to a source-control host and returns
// the normalized result.
//
// Implementations return an error wrapping entities.ErrPublishTransport when
// the call itself fails and entities.ErrMalformedResponse when the answer
// cannot be interpreted. A host that refuses the publish is reported as a
// result with Success=false, not as an error.
type PublisherRepository interface {
	// Name returns the provider identifier (e.g. "github", "backend").
	Name() string

	Publish(ctx context.Context, request entities.PublishRequest) (*entities.PublishResult, error)
}
