//go:build unit

package desktop_test

import (
	"context"
	"testing"

	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/infrastructure/repositories/desktop"
)

//nolint:paralleltest // hooks the global logger
func TestLogNotifierNotify(t *testing.T) {
	t.Run("should log errors at error level with the notice level field", func(t *testing.T) {
		// given
		hook := logtest.NewGlobal()
		t.Cleanup(hook.Reset)
		notifier := desktop.NewLogNotifier()

		// when
		notifier.Notify(entities.Notice{Level: entities.NoticeError, Message: "GitHub publish failed"})
		notifier.Notify(entities.Notice{Level: entities.NoticeSuccess, Message: "Published to GitHub"})

		// then
		entries := hook.AllEntries()
		require.Len(t, entries, 2)
		assert.Equal(t, logger.ErrorLevel, entries[0].Level)
		assert.Equal(t, "GitHub publish failed", entries[0].Message)
		assert.Equal(t, logger.InfoLevel, entries[1].Level)
		assert.Equal(t, string(entities.NoticeSuccess), entries[1].Data["notice"])
	})
}

func TestBrowserURLOpenerOpen(t *testing.T) {
	t.Parallel()

	t.Run("should only print the url when headless", func(t *testing.T) {
		t.Parallel()

		// given
		opener := desktop.NewBrowserURLOpener(true)

		// when
		err := opener.Open(context.Background(), "https://github.com/acme/app")

		// then
		require.NoError(t, err)
	})
}
