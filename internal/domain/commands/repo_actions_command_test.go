//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
	doubles "github.com/rios0rios0/repopublish/test/infrastructure/repositorydoubles"
)

func publishedSession() *commands.Session {
	return commands.NewSession(context.Background(), commands.SessionOptions{
		ProjectID: "p1",
		Metadata: &doubles.SpyMetadataRepository{
			Loaded: &entities.LoadedMetadata{RepoURL: "https://github.com/acme/widget"},
		},
	})
}

func TestRepoActionsCommandOpenRepo(t *testing.T) {
	t.Parallel()

	t.Run("should open the stored url", func(t *testing.T) {
		t.Parallel()

		// given
		opener := &doubles.SpyURLOpener{}
		notifier := &doubles.SpyNotifier{}
		cmd := commands.NewRepoActionsCommand(opener, &doubles.SpyClipboard{}, notifier)

		// when
		err := cmd.OpenRepo(context.Background(), publishedSession())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"https://github.com/acme/widget"}, opener.Opened)
		assert.Empty(t, notifier.Notices())
	})

	t.Run("should tell the user when nothing was published", func(t *testing.T) {
		t.Parallel()

		// given
		opener := &doubles.SpyURLOpener{}
		notifier := &doubles.SpyNotifier{}
		cmd := commands.NewRepoActionsCommand(opener, &doubles.SpyClipboard{}, notifier)
		session := commands.NewSession(context.Background(), commands.SessionOptions{})

		// when
		err := cmd.OpenRepo(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrNoRepositoryURL)
		assert.Empty(t, opener.Opened)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeInfo, Message: "No repository published yet"},
		}, notifier.Notices())
	})
}

func TestRepoActionsCommandCopyRepoURL(t *testing.T) {
	t.Parallel()

	t.Run("should copy the stored url", func(t *testing.T) {
		t.Parallel()

		// given
		clipboard := &doubles.SpyClipboard{}
		notifier := &doubles.SpyNotifier{}
		cmd := commands.NewRepoActionsCommand(&doubles.SpyURLOpener{}, clipboard, notifier)

		// when
		err := cmd.CopyRepoURL(context.Background(), publishedSession())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"https://github.com/acme/widget"}, clipboard.Written)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeSuccess, Message: "Repository URL copied"},
		}, notifier.Notices())
	})

	t.Run("should not touch the clipboard when nothing was published", func(t *testing.T) {
		t.Parallel()

		// given
		clipboard := &doubles.SpyClipboard{}
		notifier := &doubles.SpyNotifier{}
		cmd := commands.NewRepoActionsCommand(&doubles.SpyURLOpener{}, clipboard, notifier)
		session := commands.NewSession(context.Background(), commands.SessionOptions{})

		// when
		err := cmd.CopyRepoURL(context.Background(), session)

		// then
		require.ErrorIs(t, err, entities.ErrNoRepositoryURL)
		assert.Empty(t, clipboard.Written)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeInfo, Message: "No repository published yet"},
		}, notifier.Notices())
	})

	t.Run("should report a failed clipboard write", func(t *testing.T) {
		t.Parallel()

		// given
		clipboard := &doubles.SpyClipboard{Err: errors.New("no display")}
		notifier := &doubles.SpyNotifier{}
		cmd := commands.NewRepoActionsCommand(&doubles.SpyURLOpener{}, clipboard, notifier)

		// when
		err := cmd.CopyRepoURL(context.Background(), publishedSession())

		// then
		require.Error(t, err)
		assert.Equal(t, []entities.Notice{
			{Level: entities.NoticeError, Message: "Failed to copy repository URL"},
		}, notifier.Notices())
	})
}
