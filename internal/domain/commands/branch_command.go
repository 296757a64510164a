package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// Branch is the interface for the branch change command.
type Branch interface {
	Execute(ctx context.Context, session *Session) error
}

// BranchCommand asks the user for a new target branch and mirrors the change
// to the backend.
type BranchCommand struct {
	prompter repositories.BranchPrompter
	notifier repositories.Notifier
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(
	prompter repositories.BranchPrompter,
	notifier repositories.Notifier,
) *BranchCommand {
	return &BranchCommand{
		prompter: prompter,
		notifier: notifier,
	}
}

// Execute prompts with the current branch pre-filled. A cancelled or empty
// answer changes nothing and emits no notice.
func (it *BranchCommand) Execute(ctx context.Context, session *Session) error {
	projectID := session.ProjectID()
	current := session.Metadata().Branch

	branch, ok, err := it.prompter.PromptBranch(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to read branch: %w", err)
	}
	if !ok {
		logger.Debug("Branch change cancelled")
		return nil
	}

	if setErr := session.store.SetBranch(branch); setErr != nil {
		logger.Debugf("Ignoring branch change: %v", setErr)
		return nil
	}

	updated := session.Metadata().Branch
	session.persistAsync(ctx, projectID, entities.MetadataPatch{Branch: updated})

	it.notifier.Notify(entities.Notice{
		Level:   entities.NoticeSuccess,
		Message: "Branch set to " + updated,
	})
	return nil
}
