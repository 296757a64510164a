package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// BranchController handles the "branch" subcommand.
type BranchController struct {
	sessions commands.Sessions
	command  commands.Branch
}

// NewBranchController creates a new BranchController.
func NewBranchController(sessions commands.Sessions, command commands.Branch) *BranchController {
	return &BranchController{sessions: sessions, command: command}
}

// GetBind returns the Cobra command metadata for the branch controller.
func (it *BranchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branch",
		Short: "Change the branch the project is published to",
	}
}

// Execute prompts for the new branch.
func (it *BranchController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	session, ok := openSession(ctx, cmd, it.sessions)
	if !ok {
		return
	}
	defer session.Wait()

	if err := it.command.Execute(ctx, session); err != nil {
		logger.Errorf("Branch change failed: %v", err)
	}
}
