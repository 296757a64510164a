package repositories

import (
	"context"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// Notifier shows a notice to the user.
type Notifier interface {
	Notify(notice entities.Notice)
}

// URLOpener asks the surrounding UI to open a URL (a browser tab, a link...).
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// Clipboard writes text to the user's clipboard.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// BranchPrompter asks the user for a branch name, pre-filled with the current
// one. ok is false when the user cancelled.
type BranchPrompter interface {
	PromptBranch(ctx context.Context, current string) (branch string, ok bool, err error)
}
