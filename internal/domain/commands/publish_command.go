package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const (
	noticeNothingToPublish = "Nothing to publish"
	noticePublishFailed    = "GitHub publish failed"
	noticePublished        = "Published to GitHub"
	noticeInProgress       = "A publish is already in progress"
)

// Publish is the interface for the publish command.
type Publish interface {
	Execute(ctx context.Context, session *Session) error
}

// PublishCommand runs one publish attempt for a session:
// validate input -> call the provider -> reconcile metadata -> notify.
//
// A second attempt on the same session while one is running is rejected with
// entities.ErrPublishInProgress.
type PublishCommand struct {
	notifier repositories.Notifier
	opener   repositories.URLOpener
}

// NewPublishCommand creates a new PublishCommand.
func NewPublishCommand(
	notifier repositories.Notifier,
	opener repositories.URLOpener,
) *PublishCommand {
	return &PublishCommand{
		notifier: notifier,
		opener:   opener,
	}
}

// Execute runs the attempt. The returned error classifies the outcome for
// callers; the user has already been notified, exactly once, either way.
func (it *PublishCommand) Execute(ctx context.Context, session *Session) error {
	files := session.Files()
	if len(files) == 0 {
		it.notify(entities.NoticeInfo, noticeNothingToPublish)
		return entities.ErrNothingToPublish
	}

	if !session.beginPublish() {
		it.notify(entities.NoticeInfo, noticeInProgress)
		return entities.ErrPublishInProgress
	}

	outcome := entities.PublishFailed
	session.workspace.SetBusy(true)
	defer func() {
		session.workspace.SetBusy(false)
		session.finishPublish(outcome)
		logger.Debugf("Publish attempt finished: %s", outcome)
	}()

	projectID := session.ProjectID()
	metadata := session.Metadata()
	repoName := metadata.Name
	if repoName == "" {
		repoName = session.fallbackRepoName()
	}

	request := entities.PublishRequest{
		RepoName: repoName,
		Files:    files,
		Branch:   metadata.Branch,
	}

	result, err := it.publish(ctx, session, request)
	if err != nil {
		logger.Errorf("Publish of %q failed: %v", repoName, err)
		it.notify(entities.NoticeError, noticePublishFailed)
		return err
	}

	if !result.Success {
		message := result.Error
		if message == "" {
			message = noticePublishFailed
		}
		logger.Errorf("Publish of %q rejected: %s", repoName, message)
		it.notify(entities.NoticeError, message)
		return fmt.Errorf("%w: %s", entities.ErrPublishRejected, message)
	}

	outcome = entities.PublishSucceeded
	updated, reconciled := session.reconcilePublish(projectID, *result, repoName)
	if reconciled {
		logger.Infof("Published %d files to %q (%s)", len(files), updated.Name, updated.URL)
		session.persistAsync(ctx, projectID, entities.MetadataPatch{
			RepoName: updated.Name,
			RepoURL:  updated.URL,
			Branch:   updated.Branch,
		})
	} else {
		logger.Warnf(
			"Published %d files to %q, but the session switched away from project %q; metadata left untouched",
			len(files), repoName, projectID,
		)
	}

	it.notify(entities.NoticeSuccess, noticePublished)

	if result.RepoURL != "" {
		if openErr := it.opener.Open(ctx, result.RepoURL); openErr != nil {
			logger.Warnf("Failed to open %q: %v", result.RepoURL, openErr)
		}
	}

	return nil
}

// publish calls the session's provider, turning panics from the provider
// into transport failures so the busy flag is always released.
func (it *PublishCommand) publish(
	ctx context.Context,
	session *Session,
	request entities.PublishRequest,
) (result *entities.PublishResult, err error) {
	if session.publisher == nil {
		return nil, fmt.Errorf("%w: no publisher configured", entities.ErrPublishTransport)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = fmt.Errorf("%w: %v", entities.ErrPublishTransport, recovered)
		}
	}()

	logger.Infof(
		"Publishing %d files to %q on branch %q via %s",
		len(request.Files), request.RepoName, request.Branch, session.publisher.Name(),
	)

	result, err = session.publisher.Publish(ctx, request)
	if err != nil {
		if !errors.Is(err, entities.ErrMalformedResponse) && !errors.Is(err, entities.ErrPublishTransport) {
			err = fmt.Errorf("%w: %w", entities.ErrPublishTransport, err)
		}
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty result", entities.ErrMalformedResponse)
	}
	return result, nil
}

func (it *PublishCommand) notify(level entities.NoticeLevel, message string) {
	it.notifier.Notify(entities.Notice{Level: level, Message: message})
}
