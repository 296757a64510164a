//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

func TestParsePublishResult(t *testing.T) {
	t.Parallel()

	t.Run("should parse a successful answer", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"success":true,"repoUrl":"https://github.com/acme/x","repoName":"x"}`)

		// when
		result, err := entities.ParsePublishResult(body)

		// then
		require.NoError(t, err)
		assert.Equal(t, &entities.PublishResult{
			Success:  true,
			RepoURL:  "https://github.com/acme/x",
			RepoName: "x",
		}, result)
	})

	t.Run("should parse a rejected answer with its message", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"success":false,"error":"name already exists"}`)

		// when
		result, err := entities.ParsePublishResult(body)

		// then
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "name already exists", result.Error)
	})

	malformed := map[string]string{
		"html page":       `<html>502 Bad Gateway</html>`,
		"missing success": `{"repoUrl":"https://github.com/acme/x"}`,
		"non-bool":        `{"success":"yes"}`,
		"json array":      `[true]`,
		"json null":       `null`,
		"empty body":      ``,
		"trailing data":   `{"success":true,"repoUrl":"https://github.com/acme/x"}<html>502</html>`,
	}
	for name, body := range malformed {
		t.Run("should reject "+name+" as malformed", func(t *testing.T) {
			t.Parallel()

			// given
			raw := []byte(body)

			// when
			result, err := entities.ParsePublishResult(raw)

			// then
			require.ErrorIs(t, err, entities.ErrMalformedResponse)
			assert.Nil(t, result)
		})
	}
}

func TestPublishStateString(t *testing.T) {
	t.Parallel()

	t.Run("should name every state", func(t *testing.T) {
		t.Parallel()

		// given
		states := []entities.PublishState{
			entities.PublishIdle,
			entities.PublishPublishing,
			entities.PublishSucceeded,
			entities.PublishFailed,
		}

		// when
		names := make([]string, 0, len(states))
		for _, state := range states {
			names = append(names, state.String())
		}

		// then
		assert.Equal(t, []string{"idle", "publishing", "succeeded", "failed"}, names)
	})
}
