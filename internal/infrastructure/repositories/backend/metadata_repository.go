package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// MetadataRepository stores the repository metadata on the backend project record.
type MetadataRepository struct {
	client *Client
}

// NewMetadataRepository creates the backend metadata client.
func NewMetadataRepository(settings entities.BackendSettings) repositories.MetadataRepository {
	return &MetadataRepository{client: NewClient(settings)}
}

// Load fetches the metadata record of a project.
func (r *MetadataRepository) Load(
	ctx context.Context,
	projectID string,
) (*entities.LoadedMetadata, error) {
	resp, err := r.client.doJSON(ctx, http.MethodGet, projectMetadataPath(projectID), nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, fmt.Errorf("loading metadata of %q: unexpected status %d", projectID, resp.StatusCode)
	}

	var loaded entities.LoadedMetadata
	if unmarshalErr := json.Unmarshal(resp.Body, &loaded); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode metadata of %q: %w", projectID, unmarshalErr)
	}
	return &loaded, nil
}

// Patch sends a partial update. The response body is ignored.
func (r *MetadataRepository) Patch(
	ctx context.Context,
	projectID string,
	patch entities.MetadataPatch,
) error {
	resp, err := r.client.doJSON(ctx, http.MethodPatch, projectMetadataPath(projectID), patch)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return fmt.Errorf("patching metadata of %q: unexpected status %d", projectID, resp.StatusCode)
	}
	return nil
}
