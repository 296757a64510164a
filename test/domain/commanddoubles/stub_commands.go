//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// StubSessions is a stub implementation of commands.Sessions.
type StubSessions struct {
	Session      *commands.Session
	OpenErr      error
	LastSettings *entities.Settings
}

var _ commands.Sessions = (*StubSessions)(nil)

func (s *StubSessions) Open(_ context.Context, settings *entities.Settings) (*commands.Session, error) {
	s.LastSettings = settings
	return s.Session, s.OpenErr
}

// StubPublishCommand is a stub implementation of commands.Publish.
type StubPublishCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSession      *commands.Session
}

var _ commands.Publish = (*StubPublishCommand)(nil)

func (s *StubPublishCommand) Execute(_ context.Context, session *commands.Session) error {
	s.ExecuteCallCount++
	s.LastSession = session
	return s.ExecuteErr
}
