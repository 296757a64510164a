package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ProviderBackend = "backend"
	ProviderGitHub  = "github"
	ProviderGitLab  = "gitlab"
	ProviderGit     = "git"

	defaultBackendTimeout = 30 * time.Second
	defaultProjectDir     = "."
)

// DefaultIgnore lists the directory names skipped when reading a project.
var DefaultIgnore = []string{".git", "node_modules"} //nolint:gochecknoglobals // read-only defaults

// Settings is the top-level configuration for repopublish.
type Settings struct {
	Backend  BackendSettings  `yaml:"backend"`
	Provider ProviderSettings `yaml:"provider"`
	Project  ProjectSettings  `yaml:"project"`
}

// BackendSettings points at the application backend that stores the project
// metadata record and, for the "backend" provider, performs the publish.
type BackendSettings struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`   // Inline, ${ENV_VAR}, or file path
	Timeout time.Duration `yaml:"timeout"` // e.g. "30s"
}

// ProviderSettings selects how a file set reaches the source-control host.
type ProviderSettings struct {
	Type              string `yaml:"type"`  // "backend", "github", "gitlab", "git"
	Token             string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
	Owner             string `yaml:"owner"` // User, organization or group; empty means the token owner
	BaseURL           string `yaml:"base_url"`
	RemoteURLTemplate string `yaml:"remote_url_template"` // "git" only, {name} is replaced
	Private           bool   `yaml:"private"`
}

// ProjectSettings describes the local project being published.
type ProjectSettings struct {
	ID     string   `yaml:"id"`
	Dir    string   `yaml:"dir"`
	Ignore []string `yaml:"ignore"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving token file paths and filling defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings builds Settings from raw YAML.
func ParseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Backend.Token = resolveToken(settings.Backend.Token)
	settings.Provider.Token = resolveToken(settings.Provider.Token)
	settings.Backend.URL = strings.TrimSuffix(os.ExpandEnv(settings.Backend.URL), "/")
	settings.applyDefaults()

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// DefaultSettings is used when no config file exists: publish through the
// backend found in REPOPUBLISH_BACKEND_URL.
func DefaultSettings() *Settings {
	settings := &Settings{
		Backend: BackendSettings{
			URL:   strings.TrimSuffix(os.Getenv("REPOPUBLISH_BACKEND_URL"), "/"),
			Token: os.Getenv("REPOPUBLISH_BACKEND_TOKEN"),
		},
	}
	settings.applyDefaults()
	return settings
}

func (s *Settings) applyDefaults() {
	if s.Provider.Type == "" {
		s.Provider.Type = ProviderBackend
	}
	if s.Backend.Timeout <= 0 {
		s.Backend.Timeout = defaultBackendTimeout
	}
	if s.Project.Dir == "" {
		s.Project.Dir = defaultProjectDir
	}
	if s.Project.Ignore == nil {
		s.Project.Ignore = slices.Clone(DefaultIgnore)
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".repopublish.yaml",
		".repopublish.yml",
		"repopublish.yaml",
		"repopublish.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	switch settings.Provider.Type {
	case ProviderBackend:
		if settings.Backend.URL == "" {
			return errors.New("backend.url is required for the backend provider")
		}
	case ProviderGitHub, ProviderGitLab:
		if settings.Provider.Token == "" {
			return fmt.Errorf(
				"provider.token is required for %s (set inline, via ${ENV_VAR}, or as file path)",
				settings.Provider.Type,
			)
		}
	case ProviderGit:
		if !strings.Contains(settings.Provider.RemoteURLTemplate, "{name}") {
			return errors.New("provider.remote_url_template must contain {name}")
		}
	default:
		return fmt.Errorf(
			"unknown provider.type %q (expected backend, github, gitlab or git)",
			settings.Provider.Type,
		)
	}

	return nil
}
