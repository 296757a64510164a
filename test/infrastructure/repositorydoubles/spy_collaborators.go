//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// SpyNotifier records every notice.
type SpyNotifier struct {
	mu      sync.Mutex
	notices []entities.Notice
}

var _ repositories.Notifier = (*SpyNotifier)(nil)

func (n *SpyNotifier) Notify(notice entities.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *SpyNotifier) Notices() []entities.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entities.Notice(nil), n.notices...)
}

// SpyURLOpener records opened URLs.
type SpyURLOpener struct {
	Err    error
	Opened []string
}

var _ repositories.URLOpener = (*SpyURLOpener)(nil)

func (o *SpyURLOpener) Open(_ context.Context, url string) error {
	o.Opened = append(o.Opened, url)
	return o.Err
}

// SpyClipboard records clipboard writes.
type SpyClipboard struct {
	Err     error
	Written []string
}

var _ repositories.Clipboard = (*SpyClipboard)(nil)

func (c *SpyClipboard) Write(_ context.Context, text string) error {
	c.Written = append(c.Written, text)
	return c.Err
}

// StubBranchPrompter answers the branch prompt with a fixed value.
type StubBranchPrompter struct {
	Branch string
	OK     bool
	Err    error
	// spy: current branch passed as pre-fill
	Prefilled []string
}

var _ repositories.BranchPrompter = (*StubBranchPrompter)(nil)

func (p *StubBranchPrompter) PromptBranch(_ context.Context, current string) (string, bool, error) {
	p.Prefilled = append(p.Prefilled, current)
	return p.Branch, p.OK, p.Err
}

// StubWorkspaceRepository returns a fixed file set.
type StubWorkspaceRepository struct {
	Files entities.ProjectFileSet
	Err   error
}

var _ repositories.WorkspaceRepository = (*StubWorkspaceRepository)(nil)

func (w *StubWorkspaceRepository) LoadFiles(_ context.Context) (entities.ProjectFileSet, error) {
	return w.Files, w.Err
}
