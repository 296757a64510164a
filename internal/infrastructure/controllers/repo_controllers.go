package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// OpenController handles the "open" subcommand.
type OpenController struct {
	sessions commands.Sessions
	command  commands.RepoActions
}

// NewOpenController creates a new OpenController.
func NewOpenController(sessions commands.Sessions, command commands.RepoActions) *OpenController {
	return &OpenController{sessions: sessions, command: command}
}

func (it *OpenController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "open",
		Short: "Open the published repository in the browser",
	}
}

func (it *OpenController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	session, ok := openSession(ctx, cmd, it.sessions)
	if !ok {
		return
	}
	if err := it.command.OpenRepo(ctx, session); err != nil {
		logger.Debugf("Open ended with: %v", err)
	}
}

// CopyURLController handles the "copy-url" subcommand.
type CopyURLController struct {
	sessions commands.Sessions
	command  commands.RepoActions
}

// NewCopyURLController creates a new CopyURLController.
func NewCopyURLController(sessions commands.Sessions, command commands.RepoActions) *CopyURLController {
	return &CopyURLController{sessions: sessions, command: command}
}

func (it *CopyURLController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "copy-url",
		Short: "Copy the published repository URL to the clipboard",
	}
}

func (it *CopyURLController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	session, ok := openSession(ctx, cmd, it.sessions)
	if !ok {
		return
	}
	if err := it.command.CopyRepoURL(ctx, session); err != nil {
		logger.Debugf("Copy ended with: %v", err)
	}
}
