// Package commands implements the semreview CLI. Subcommands register
// themselves via init(), and the binary wires them up with NewRoot.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/c360studio/semreview/config"
)

var (
	registryMu sync.Mutex
	registry   []func() *cobra.Command
)

// Register adds a subcommand constructor to the root command. Called from
// init() in each command file.
func Register(newCmd func() *cobra.Command) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, newCmd)
}

// rootFlags holds the persistent flag values shared by every subcommand.
var rootFlags struct {
	configPath string
	logLevel   string
}

// NewRoot builds the semreview root command with all registered subcommands
// attached.
func NewRoot(version, buildTime string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semreview",
		Short: "Ontology-driven hackathon review aggregation",
		Long: `Semreview ingests free-text peer reviews of hackathon projects,
classifies each reviewer into a knowledge domain, filters and weights
reviews by relevance and expertise, synthesizes missing domain
perspectives, and aggregates everything into per-dimension scores and
a final narrative report.

Projects live as markdown directories under the workspace projects
directory; results land in the output directory and the configured
results store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; it carries provider API keys in dev setups.
			_ = godotenv.Load()
			return setupLogging(rootFlags.logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&rootFlags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "semreview version %s (build: %s)\n", version, buildTime)
		},
	})

	registryMu.Lock()
	defer registryMu.Unlock()
	for _, newCmd := range registry {
		cmd.AddCommand(newCmd())
	}
	return cmd
}

// setupLogging installs the global slog handler at the requested level.
func setupLogging(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig resolves the engine configuration: an explicit --config path
// wins, otherwise the layered user + workspace lookup applies.
func loadConfig() (*config.Config, error) {
	if rootFlags.configPath != "" {
		cfg, err := config.LoadFromFile(rootFlags.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", rootFlags.configPath, err)
		}
		return cfg, nil
	}
	return config.NewLoader(slog.Default()).Load()
}
