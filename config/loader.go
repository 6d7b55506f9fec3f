package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the workspace-level config file
	ProjectConfigFile = "semreview.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/semreview"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semreview/config.yaml)
// 3. Workspace config (semreview.yaml in current or parent directories)
//
// Relative workspace paths resolve against the directory holding the
// workspace config file, or the current directory when none is found.
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	config := Default()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	// Load workspace config
	workspaceConfigPath := l.findWorkspaceConfig()
	if workspaceConfigPath != "" {
		if workspaceConfig, err := LoadFromFile(workspaceConfigPath); err == nil {
			l.logger.Debug("Loaded workspace config", slog.String("path", workspaceConfigPath))
			config.Merge(workspaceConfig)
		} else {
			l.logger.Warn("Failed to load workspace config", slog.String("path", workspaceConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No workspace config found")
	}

	// Anchor relative paths to the workspace root
	config.resolvePaths(l.workspaceRoot(workspaceConfigPath))

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	// Check if it already exists
	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	// Create default config
	config := Default()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findWorkspaceConfig searches for semreview.yaml in current and parent directories
func (l *Loader) findWorkspaceConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}

// workspaceRoot picks the directory that relative paths resolve against
func (l *Loader) workspaceRoot(workspaceConfigPath string) string {
	if workspaceConfigPath != "" {
		return filepath.Dir(workspaceConfigPath)
	}
	if cwd, err := os.Getwd(); err == nil {
		l.logger.Debug("Using current directory as workspace root", slog.String("path", cwd))
		return cwd
	}
	return ""
}

// resolvePaths makes relative workspace paths absolute against root
func (c *Config) resolvePaths(root string) {
	if root == "" {
		return
	}
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	c.Workspace.ProjectsDir = resolve(c.Workspace.ProjectsDir)
	c.Workspace.OutputDir = resolve(c.Workspace.OutputDir)
	c.Workspace.DataDir = resolve(c.Workspace.DataDir)
	c.Ontology.Path = resolve(c.Ontology.Path)
	if c.LLM.RegistryPath != "" {
		c.LLM.RegistryPath = resolve(c.LLM.RegistryPath)
	}
	c.Storage.Dir = resolve(c.Storage.Dir)
}
