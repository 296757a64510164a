//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// SpyPublisherRepository implements repositories.PublisherRepository as a configurable spy.
type SpyPublisherRepository struct {
	// --- identity ---
	ProviderName string

	// --- Publish ---
	Result *entities.PublishResult
	Err    error
	Panic  any
	// OnPublish runs inside Publish, before it returns (e.g. to block or inspect state)
	OnPublish func(request entities.PublishRequest)

	mu       sync.Mutex
	requests []entities.PublishRequest
}

var _ repositories.PublisherRepository = (*SpyPublisherRepository)(nil)

func (p *SpyPublisherRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyPublisherRepository) Publish(
	_ context.Context, request entities.PublishRequest,
) (*entities.PublishResult, error) {
	p.mu.Lock()
	p.requests = append(p.requests, request)
	p.mu.Unlock()

	if p.OnPublish != nil {
		p.OnPublish(request)
	}
	if p.Panic != nil {
		panic(p.Panic)
	}
	return p.Result, p.Err
}

// Requests returns the requests received so far.
func (p *SpyPublisherRepository) Requests() []entities.PublishRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entities.PublishRequest(nil), p.requests...)
}
