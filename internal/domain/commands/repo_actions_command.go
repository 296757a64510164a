package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const (
	noticeNoRepository = "No repository published yet"
	noticeURLCopied    = "Repository URL copied"
	noticeCopyFailed   = "Failed to copy repository URL"
)

// RepoActions is the interface for the actions on the published repository.
type RepoActions interface {
	OpenRepo(ctx context.Context, session *Session) error
	CopyRepoURL(ctx context.Context, session *Session) error
}

// RepoActionsCommand opens or copies the stored repository URL.
type RepoActionsCommand struct {
	opener    repositories.URLOpener
	clipboard repositories.Clipboard
	notifier  repositories.Notifier
}

// NewRepoActionsCommand creates a new RepoActionsCommand.
func NewRepoActionsCommand(
	opener repositories.URLOpener,
	clipboard repositories.Clipboard,
	notifier repositories.Notifier,
) *RepoActionsCommand {
	return &RepoActionsCommand{
		opener:    opener,
		clipboard: clipboard,
		notifier:  notifier,
	}
}

// OpenRepo asks the UI to open the repository page.
func (it *RepoActionsCommand) OpenRepo(ctx context.Context, session *Session) error {
	url := session.Metadata().URL
	if url == "" {
		it.notify(entities.NoticeInfo, noticeNoRepository)
		return entities.ErrNoRepositoryURL
	}

	if err := it.opener.Open(ctx, url); err != nil {
		logger.Warnf("Failed to open %q: %v", url, err)
		return fmt.Errorf("failed to open repository: %w", err)
	}
	return nil
}

// CopyRepoURL writes the repository URL to the clipboard.
func (it *RepoActionsCommand) CopyRepoURL(ctx context.Context, session *Session) error {
	url := session.Metadata().URL
	if url == "" {
		it.notify(entities.NoticeInfo, noticeNoRepository)
		return entities.ErrNoRepositoryURL
	}

	if err := it.clipboard.Write(ctx, url); err != nil {
		logger.Warnf("Clipboard write failed: %v", err)
		it.notify(entities.NoticeError, noticeCopyFailed)
		return fmt.Errorf("failed to copy repository url: %w", err)
	}

	it.notify(entities.NoticeSuccess, noticeURLCopied)
	return nil
}

func (it *RepoActionsCommand) notify(level entities.NoticeLevel, message string) {
	it.notifier.Notify(entities.Notice{Level: level, Message: message})
}
