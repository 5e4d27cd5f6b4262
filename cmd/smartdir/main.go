package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"smartdir/cmd/smartdir/dashboard"
	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/api"
	"smartdir/internal/config"
	"smartdir/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smartdir",
	Short: "AGEXPORT Smart Directory admin console",
	Long: `smartdir manages the Smart Directory collections: partners (socios),
recommendations, conversations and operational logs.

Run without arguments to start the interactive dashboard. Subcommands give
scriptable access to the same /api surface, and "gateway" serves that
surface in front of the backend's /db router.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd == cmd.Root())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Base URL of the /api surface (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearLogsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(gatewayCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger. The dashboard owns the
// terminal, so it never logs to the console.
func setup(interactive bool) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	if interactive {
		loaded.Logging.Console = false
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logging.New(loaded.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = loaded
	logger = l
	logging.For(logger, logging.CategoryBoot).Debug("config loaded",
		zap.String("path", configPath),
		zap.String("api", cfg.API.BaseURL))
	return nil
}

// newClient builds the REST client from the loaded config.
func newClient() *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.GetAPITimeout()),
		api.WithLogger(logger))
}

func styles() ui.Styles {
	if cfg != nil && cfg.UI.DarkMode {
		return ui.NewStyles(ui.DarkTheme())
	}
	return ui.DefaultStyles()
}

// runDashboard starts the full-screen dashboard and blocks until it exits.
func runDashboard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := dashboard.New(dashboard.BackendFromClient(newClient()),
		dashboard.WithContext(ctx),
		dashboard.WithStyles(styles()),
		dashboard.WithLogger(logger))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
