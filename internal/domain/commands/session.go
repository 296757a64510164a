package commands

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const fallbackNamePrefix = "ai-workspace-"

// SessionOptions carries what a Session needs from the outside.
type SessionOptions struct {
	ProjectID string
	Publisher repositories.PublisherRepository
	Metadata  repositories.MetadataRepository
	Clock     entities.Clock
}

// Session owns the per-project state of one editing session: the workspace
// files, the repository metadata and the publish state machine. Background
// metadata writes started by the session are tracked so callers can drain
// them with Wait.
type Session struct {
	mu        sync.Mutex
	projectID string
	timestamp string // fallback name suffix when there is no project id

	publisher repositories.PublisherRepository
	metadata  repositories.MetadataRepository
	clock     entities.Clock

	workspace *entities.ProjectWorkspace
	store     *entities.RepoMetadataStore
	state     atomic.Int32
	lastState atomic.Int32

	background sync.WaitGroup
}

// NewSession builds a session and, when a project id is known, loads the
// stored repository metadata once.
func NewSession(ctx context.Context, opts SessionOptions) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = entities.SystemClock
	}

	session := &Session{
		projectID: opts.ProjectID,
		publisher: opts.Publisher,
		metadata:  opts.Metadata,
		clock:     clock,
		workspace: entities.NewProjectWorkspace(),
		store:     entities.NewRepoMetadataStore(),
	}
	session.LoadMetadata(ctx)
	return session
}

func (s *Session) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// SetProjectID switches the session to another project. The metadata is
// reset and loaded again for the new identifier; setting the same id is a no-op.
func (s *Session) SetProjectID(ctx context.Context, projectID string) {
	s.mu.Lock()
	if s.projectID == projectID {
		s.mu.Unlock()
		return
	}
	s.projectID = projectID
	s.mu.Unlock()

	s.store.Reset()
	s.LoadMetadata(ctx)
}

// LoadMetadata fetches the stored metadata for the current project id. Any
// failure leaves the metadata at its current values: it is optional and must
// never block the caller.
func (s *Session) LoadMetadata(ctx context.Context) {
	projectID := s.ProjectID()
	if projectID == "" || s.metadata == nil {
		return
	}

	loaded, err := s.metadata.Load(ctx, projectID)
	if err != nil {
		logger.Debugf("Could not load repository metadata for %q: %v", projectID, err)
		return
	}
	if loaded == nil {
		return
	}

	s.store.ApplyLoaded(*loaded)
	logger.Debugf("Loaded repository metadata for %q: %+v", projectID, s.store.Snapshot())
}

// ReplaceFiles forwards an upstream snapshot to the workspace.
func (s *Session) ReplaceFiles(snapshot entities.ProjectFileSet) bool {
	return s.workspace.ReplaceFiles(snapshot)
}

func (s *Session) Files() entities.ProjectFileSet { return s.workspace.Files() }

func (s *Session) Busy() bool { return s.workspace.Busy() }

func (s *Session) Metadata() entities.RepoMetadata { return s.store.Snapshot() }

// PublishState returns the current step of the publish state machine.
func (s *Session) PublishState() entities.PublishState {
	return entities.PublishState(s.state.Load())
}

// LastPublishOutcome returns the terminal state of the most recent attempt,
// or PublishIdle if nothing was attempted.
func (s *Session) LastPublishOutcome() entities.PublishState {
	return entities.PublishState(s.lastState.Load())
}

// Wait blocks until all background metadata writes have finished.
func (s *Session) Wait() {
	s.background.Wait()
}

// fallbackRepoName is used when no repository name is known yet. It is stable
// for the lifetime of the session.
func (s *Session) fallbackRepoName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectID != "" {
		return fallbackNamePrefix + s.projectID
	}
	if s.timestamp == "" {
		s.timestamp = strconv.FormatInt(s.clock().UnixMilli(), 10)
	}
	return fallbackNamePrefix + s.timestamp
}

// beginPublish moves Idle -> Publishing; it fails when an attempt is already running.
func (s *Session) beginPublish() bool {
	return s.state.CompareAndSwap(int32(entities.PublishIdle), int32(entities.PublishPublishing))
}

func (s *Session) finishPublish(outcome entities.PublishState) {
	s.lastState.Store(int32(outcome))
	s.state.Store(int32(entities.PublishIdle))
}

// reconcilePublish applies a successful result to the metadata, unless the
// session moved to another project while the attempt was running.
func (s *Session) reconcilePublish(
	projectID string,
	result entities.PublishResult,
	requestedName string,
) (entities.RepoMetadata, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectID != projectID {
		return entities.RepoMetadata{}, false
	}
	s.store.ApplyPublishResult(result, requestedName)
	return s.store.Snapshot(), true
}

// persistAsync mirrors a metadata mutation of the given project to the
// backend without waiting for it. Failures are logged and otherwise ignored.
func (s *Session) persistAsync(ctx context.Context, projectID string, patch entities.MetadataPatch) {
	if projectID == "" || s.metadata == nil || patch.IsEmpty() {
		logger.Debug("Skipping repository metadata sync: no project id or backend")
		return
	}

	detached := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if err := s.metadata.Patch(detached, projectID, patch); err != nil {
			logger.Warnf("Failed to sync repository metadata for %q: %v", projectID, err)
			return
		}
		logger.Debugf("Synced repository metadata for %q", projectID)
	}()
}
