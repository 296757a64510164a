package commands

// FallbackRepoName exports fallbackRepoName for testing.
func (s *Session) FallbackRepoName() string { return s.fallbackRepoName() }
