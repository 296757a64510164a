package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repopublish/internal/domain/commands"
	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

// loadSettings reads --config (or the auto-detected file) and applies the
// --project and --dir overrides.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	projectID, _ := cmd.Flags().GetString("project")
	projectDir, _ := cmd.Flags().GetString("dir")

	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found (%v), using environment defaults", err)
		}
	}

	settings := entities.DefaultSettings()
	if cfgPath != "" {
		logger.Debugf("Using config file: %s", cfgPath)
		loaded, err := entities.NewSettings(cfgPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if projectID != "" {
		settings.Project.ID = projectID
	}
	if projectDir != "" {
		settings.Project.Dir = projectDir
	}
	return settings, nil
}

// openSession loads the settings and opens a session for the current command.
func openSession(
	ctx context.Context,
	cmd *cobra.Command,
	sessions commands.Sessions,
) (*commands.Session, bool) {
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return nil, false
	}

	session, err := sessions.Open(ctx, settings)
	if err != nil {
		logger.Errorf("failed to open project: %v", err)
		return nil, false
	}
	return session, true
}
