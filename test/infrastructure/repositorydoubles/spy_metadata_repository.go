//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// SpyMetadataRepository implements repositories.MetadataRepository as a configurable spy.
// It is safe for use from the background goroutines that send patches.
type SpyMetadataRepository struct {
	// --- Load ---
	Loaded  *entities.LoadedMetadata
	LoadErr error
	// LoadedByID overrides Loaded per project id when set
	LoadedByID map[string]*entities.LoadedMetadata

	// --- Patch ---
	PatchErr error

	mu         sync.Mutex
	loadCalls  []string
	patchCalls []PatchCall
}

// PatchCall records a single invocation of Patch.
type PatchCall struct {
	ProjectID string
	Patch     entities.MetadataPatch
}

var _ repositories.MetadataRepository = (*SpyMetadataRepository)(nil)

func (r *SpyMetadataRepository) Load(
	_ context.Context, projectID string,
) (*entities.LoadedMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadCalls = append(r.loadCalls, projectID)

	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	if r.LoadedByID != nil {
		return r.LoadedByID[projectID], nil
	}
	return r.Loaded, nil
}

func (r *SpyMetadataRepository) Patch(
	_ context.Context, projectID string, patch entities.MetadataPatch,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patchCalls = append(r.patchCalls, PatchCall{ProjectID: projectID, Patch: patch})
	return r.PatchErr
}

// LoadCalls returns the project ids Load was called with.
func (r *SpyMetadataRepository) LoadCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loadCalls...)
}

// PatchCalls returns the patches received so far.
func (r *SpyMetadataRepository) PatchCalls() []PatchCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PatchCall(nil), r.patchCalls...)
}
