//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// PublishResultBuilder helps create provider answers with a fluent interface.
// The default is a successful publish of acme/app.
type PublishResultBuilder struct {
	*testkit.BaseBuilder
	success  bool
	repoURL  string
	repoName string
	message  string
}

// NewPublishResultBuilder creates a new publish result builder with sensible defaults.
func NewPublishResultBuilder() *PublishResultBuilder {
	return &PublishResultBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		success:     true,
		repoURL:     "https://github.com/acme/app",
	}
}

// Failed turns the result into an unsuccessful one with the given message.
func (b *PublishResultBuilder) Failed(message string) *PublishResultBuilder {
	b.success = false
	b.repoURL = ""
	b.repoName = ""
	b.message = message
	return b
}

// WithRepoURL sets the returned repository URL.
func (b *PublishResultBuilder) WithRepoURL(repoURL string) *PublishResultBuilder {
	b.repoURL = repoURL
	return b
}

// WithRepoName sets the returned repository name.
func (b *PublishResultBuilder) WithRepoName(repoName string) *PublishResultBuilder {
	b.repoName = repoName
	return b
}

// Build creates the result (satisfies testkit.Builder interface).
func (b *PublishResultBuilder) Build() interface{} {
	return b.BuildPublishResult()
}

// BuildPublishResult creates the result with a concrete return type.
func (b *PublishResultBuilder) BuildPublishResult() *entities.PublishResult {
	return &entities.PublishResult{
		Success:  b.success,
		RepoURL:  b.repoURL,
		RepoName: b.repoName,
		Error:    b.message,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PublishResultBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.success = true
	b.repoURL = "https://github.com/acme/app"
	b.repoName = ""
	b.message = ""
	return b
}

// Clone creates a deep copy of the PublishResultBuilder.
func (b *PublishResultBuilder) Clone() testkit.Builder {
	return &PublishResultBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		success:     b.success,
		repoURL:     b.repoURL,
		repoName:    b.repoName,
		message:     b.message,
	}
}
