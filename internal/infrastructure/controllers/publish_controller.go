package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// PublishController handles the "publish" subcommand.
type PublishController struct {
	sessions commands.Sessions
	command  commands.Publish
}

// NewPublishController creates a new PublishController.
func NewPublishController(sessions commands.Sessions, command commands.Publish) *PublishController {
	return &PublishController{sessions: sessions, command: command}
}

// GetBind returns the Cobra command metadata for the publish controller.
func (it *PublishController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "publish",
		Short: "Publish the project files to the remote repository",
		Long: `Publish every file of the project directory to the remote repository.

The repository name comes from the stored project metadata, or is generated
as ai-workspace-<project id> on the first publish. After a successful publish
the repository metadata is synced back to the backend and the repository is
opened in the browser.`,
	}
}

// Execute runs one publish attempt.
func (it *PublishController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	session, ok := openSession(ctx, cmd, it.sessions)
	if !ok {
		return
	}
	defer session.Wait()

	if err := it.command.Execute(ctx, session); err != nil {
		logger.Debugf("Publish ended with: %v", err)
	}
}
