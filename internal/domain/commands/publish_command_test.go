//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
	builders "github.com/rios0rios0/repopublish/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/repopublish/test/infrastructure/repositorydoubles"
)

type publishFixture struct {
	publisher *doubles.SpyPublisherRepository
	metadata  *doubles.SpyMetadataRepository
	notifier  *doubles.SpyNotifier
	opener    *doubles.SpyURLOpener
	command   *commands.PublishCommand
}

func newPublishFixture() *publishFixture {
	fixture := &publishFixture{
		publisher: &doubles.SpyPublisherRepository{},
		metadata:  &doubles.SpyMetadataRepository{},
		notifier:  &doubles.SpyNotifier{},
		opener:    &doubles.SpyURLOpener{},
	}
	fixture.command = commands.NewPublishCommand(fixture.notifier, fixture.opener)
	return fixture
}

func (f *publishFixture) session(projectID string, files entities.ProjectFileSet) *commands.Session {
	session := commands.NewSession(context.Background(), commands.SessionOptions{
		ProjectID: projectID,
		Publisher: f.publisher,
		Metadata:  f.metadata,
		Clock:     fixedClock,
	})
	session.ReplaceFiles(files)
	return session
}

func TestPublishCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should publish a fresh project under the fallback name and sync metadata", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().
			WithRepoURL("https://github.com/acme/ai-workspace-p1").
			BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"App.js": "export default 1"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		requests := fixture.publisher.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, entities.PublishRequest{
			RepoName: "ai-workspace-p1",
			Files:    entities.ProjectFileSet{"App.js": "export default 1"},
			Branch:   "main",
		}, requests[0])

		assert.Equal(t, entities.RepoMetadata{
			Name:   "ai-workspace-p1",
			URL:    "https://github.com/acme/ai-workspace-p1",
			Branch: "main",
		}, session.Metadata())

		patches := fixture.metadata.PatchCalls()
		require.Len(t, patches, 1)
		assert.Equal(t, "p1", patches[0].ProjectID)
		assert.Equal(t, entities.MetadataPatch{
			RepoName: "ai-workspace-p1",
			RepoURL:  "https://github.com/acme/ai-workspace-p1",
			Branch:   "main",
		}, patches[0].Patch)

		assert.Equal(t, []string{"https://github.com/acme/ai-workspace-p1"}, fixture.opener.Opened)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeSuccess, Message: "Published to GitHub"},
		}, fixture.notifier.Notices())
		assert.False(t, session.Busy())
		assert.Equal(t, entities.PublishIdle, session.PublishState())
		assert.Equal(t, entities.PublishSucceeded, session.LastPublishOutcome())
	})

	t.Run("should reuse the stored name and branch on later publishes", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.metadata.Loaded = &entities.LoadedMetadata{
			RepoURL: "https://github.com/acme/widget",
			Branch:  "dev",
		}
		fixture.publisher.Result = builders.NewPublishResultBuilder().
			WithRepoURL("https://github.com/acme/widget").
			BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		requests := fixture.publisher.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "widget", requests[0].RepoName)
		assert.Equal(t, "dev", requests[0].Branch)
	})

	t.Run("should keep metadata when the response is malformed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.metadata.Loaded = &entities.LoadedMetadata{RepoURL: "https://github.com/acme/widget"}
		fixture.publisher.Err = entities.ErrMalformedResponse
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})
		before := session.Metadata()

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.ErrorIs(t, err, entities.ErrMalformedResponse)
		assert.Equal(t, before, session.Metadata())
		assert.Empty(t, fixture.metadata.PatchCalls())
		assert.Empty(t, fixture.opener.Opened)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeError, Message: "GitHub publish failed"},
		}, fixture.notifier.Notices())
		assert.False(t, session.Busy())
		assert.Equal(t, entities.PublishFailed, session.LastPublishOutcome())
	})

	t.Run("should show the server message when the publish is rejected", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().
			Failed("Repository name already taken").
			BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.ErrorIs(t, err, entities.ErrPublishRejected)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeError, Message: "Repository name already taken"},
		}, fixture.notifier.Notices())
		assert.Equal(t, entities.RepoMetadata{Branch: "main"}, session.Metadata())
		assert.Empty(t, fixture.metadata.PatchCalls())
	})

	t.Run("should show the generic message when a rejection has no message", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().Failed("").BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrPublishRejected)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeError, Message: "GitHub publish failed"},
		}, fixture.notifier.Notices())
	})

	t.Run("should not call the provider when there are no files", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		session := fixture.session("p1", nil)

		// when
		err := fixture.command.Execute(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrNothingToPublish)
		assert.Empty(t, fixture.publisher.Requests())
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeInfo, Message: "Nothing to publish"},
		}, fixture.notifier.Notices())
		assert.False(t, session.Busy())
		assert.Equal(t, entities.PublishIdle, session.LastPublishOutcome())
	})

	t.Run("should classify provider errors as transport failures", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Err = errors.New("connection refused")
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrPublishTransport)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeError, Message: "GitHub publish failed"},
		}, fixture.notifier.Notices())
		assert.False(t, session.Busy())
	})

	t.Run("should release the busy flag when the provider panics", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Panic = "boom"
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrPublishTransport)
		assert.False(t, session.Busy())
		assert.Equal(t, entities.PublishIdle, session.PublishState())
	})

	t.Run("should be busy while the provider call is running", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		var busyDuringCall bool
		var stateDuringCall entities.PublishState
		fixture.publisher.OnPublish = func(entities.PublishRequest) {
			busyDuringCall = session.Busy()
			stateDuringCall = session.PublishState()
		}

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		assert.True(t, busyDuringCall)
		assert.Equal(t, entities.PublishPublishing, stateDuringCall)
		assert.False(t, session.Busy())
	})

	t.Run("should not open anything when the result carries no url", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().
			WithRepoURL("").
			WithRepoName("server-name").
			BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		assert.Empty(t, fixture.opener.Opened)
		assert.Equal(t, "server-name", session.Metadata().Name)
		patches := fixture.metadata.PatchCalls()
		require.Len(t, patches, 1)
		assert.Equal(t, entities.MetadataPatch{RepoName: "server-name", Branch: "main"}, patches[0].Patch)
	})

	t.Run("should succeed even when the metadata sync fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.metadata.PatchErr = errors.New("backend down")
		fixture.publisher.Result = builders.NewPublishResultBuilder().BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		assert.Equal(t, "app", session.Metadata().Name)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeSuccess, Message: "Published to GitHub"},
		}, fixture.notifier.Notices())
	})

	t.Run("should skip the metadata sync without a project id", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().BuildPublishResult()
		session := fixture.session("", entities.ProjectFileSet{"a.txt": "a"})

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		requests := fixture.publisher.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "ai-workspace-1700000000000", requests[0].RepoName)
		assert.Empty(t, fixture.metadata.PatchCalls())
	})

	t.Run("should reject a second publish while one is running", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Result = builders.NewPublishResultBuilder().BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})

		started := make(chan struct{})
		release := make(chan struct{})
		fixture.publisher.OnPublish = func(entities.PublishRequest) {
			close(started)
			<-release
		}

		var wg sync.WaitGroup
		var firstErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			firstErr = fixture.command.Execute(context.Background(), session)
		}()
		<-started

		// when
		secondErr := fixture.command.Execute(context.Background(), session)
		close(release)
		wg.Wait()
		session.Wait()

		// then
		require.ErrorIs(t, secondErr, entities.ErrPublishInProgress)
		require.NoError(t, firstErr)
		assert.Len(t, fixture.publisher.Requests(), 1)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeInfo, Message: "A publish is already in progress"},
			{Level: entities.NoticeSuccess, Message: "Published to GitHub"},
		}, fixture.notifier.Notices())
		assert.False(t, session.Busy())
	})

	t.Run("should leave metadata alone when the project changes during the publish", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.metadata.LoadedByID = map[string]*entities.LoadedMetadata{
			"p2": {RepoURL: "https://github.com/acme/other", Branch: "dev"},
		}
		fixture.publisher.Result = builders.NewPublishResultBuilder().
			WithRepoURL("https://github.com/acme/ai-workspace-p1").
			BuildPublishResult()
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})
		fixture.publisher.OnPublish = func(entities.PublishRequest) {
			session.SetProjectID(context.Background(), "p2")
		}

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.RepoMetadata{
			Name:   "other",
			URL:    "https://github.com/acme/other",
			Branch: "dev",
		}, session.Metadata())
		assert.Empty(t, fixture.metadata.PatchCalls())
		assert.Equal(t, []string{"https://github.com/acme/ai-workspace-p1"}, fixture.opener.Opened)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeSuccess, Message: "Published to GitHub"},
		}, fixture.notifier.Notices())
		assert.Equal(t, entities.PublishSucceeded, session.LastPublishOutcome())
	})

	t.Run("should allow a new publish after the previous one finished", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPublishFixture()
		fixture.publisher.Err = errors.New("timeout")
		session := fixture.session("p1", entities.ProjectFileSet{"a.txt": "a"})
		require.Error(t, fixture.command.Execute(context.Background(), session))
		fixture.publisher.Err = nil
		fixture.publisher.Result = builders.NewPublishResultBuilder().BuildPublishResult()

		// when
		err := fixture.command.Execute(context.Background(), session)
		session.Wait()

		// then
		require.NoError(t, err)
		assert.Len(t, fixture.publisher.Requests(), 2)
		assert.Equal(t, entities.PublishSucceeded, session.LastPublishOutcome())
	})
}
