package backend

import (
	"context"
	"fmt"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const providerName = "backend"

// Publisher publishes through the backend's publish endpoint, which owns the
// credentials for the source-control host.
type Publisher struct {
	client *Client
}

// NewPublisher creates a backend publisher from settings.
func NewPublisher(settings *entities.Settings) repositories.PublisherRepository {
	return &Publisher{client: NewClient(settings.Backend)}
}

func (p *Publisher) Name() string { return providerName }

// Publish posts the request and interprets the body whatever the HTTP status:
// the backend reports refusals as {"success": false, "error": "..."}.
func (p *Publisher) Publish(
	ctx context.Context,
	request entities.PublishRequest,
) (*entities.PublishResult, error) {
	resp, err := p.client.doJSON(ctx, http.MethodPost, publishPath, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrPublishTransport, err)
	}

	logger.Debugf("Publish endpoint answered %d (%d bytes)", resp.StatusCode, len(resp.Body))

	result, err := entities.ParsePublishResult(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, err)
	}
	return result, nil
}
