package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	sessions commands.Sessions
}

// NewStatusController creates a new StatusController.
func NewStatusController(sessions commands.Sessions) *StatusController {
	return &StatusController{sessions: sessions}
}

func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Show the project files and repository metadata",
	}
}

func (it *StatusController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	session, ok := openSession(ctx, cmd, it.sessions)
	if !ok {
		return
	}

	metadata := session.Metadata()
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Project:    %s\n", valueOrDash(session.ProjectID()))
	_, _ = fmt.Fprintf(out, "Files:      %d\n", len(session.Files()))
	_, _ = fmt.Fprintf(out, "Repository: %s\n", valueOrDash(metadata.Name))
	_, _ = fmt.Fprintf(out, "URL:        %s\n", valueOrDash(metadata.URL))
	_, _ = fmt.Fprintf(out, "Branch:     %s\n", metadata.Branch)
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
