package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ignitionstack/wasmboard/internal/config"
	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/logging"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Global flags
var (
	configPath  string
	plainOutput bool
	logLevel    string
)

var (
	cfg       *config.Config
	logger    = zap.NewNop()
	container *di.Container
)

var rootCmd = &cobra.Command{
	Use:   "wasmboard",
	Short: "Validate, inspect and run WebAssembly modules",
	Long: `wasmboard is the command line companion of the WebAssembly hosting dashboard.

It checks server payloads against the dashboard contracts, keeps the list of
modules of the current session, and inspects or runs modules locally.

Key capabilities:
* Validate JSON documents exchanged with the hosting API
* Maintain the session module list (load, add, remove, sync from a workspace)
* Describe the exported functions of a .wasm file
* Call exported functions with numeric parameters`,
	Example: `  # Validate a module listing returned by the server
  wasmboard validate modules listing.json

  # Add a module and list the session modules
  wasmboard modules add ./build/math.wasm
  wasmboard modules list

  # Call a function of module 1
  wasmboard function call 1 add 2 3

  # Use a custom config file
  wasmboard --config ~/.wasmboard/dev.yaml modules list`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if plainOutput {
			cfg.UI.Plain = true
		}

		logger, err = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}

		ui.SetPlain(cfg.UI.Plain)
		ui.SetWidth(cfg.UI.Width)
		ui.Theme = cfg.UI.Theme

		cmd.Flags().Visit(func(f *pflag.Flag) {
			logger.Debug("flag set", zap.String("flag", f.Name), zap.String("value", f.Value.String()))
		})
		logger.Debug("configuration loaded",
			zap.String("config", configPath),
			zap.String("session_dir", cfg.Session.Dir),
			zap.Duration("call_timeout", cfg.Runtime.CallTimeout))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return shutdown(cmd.Context())
	},
}

// provideContainer starts the application container on first use.
func provideContainer(ctx context.Context) (*di.Container, error) {
	if container != nil {
		return container, nil
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	c, err := di.Start(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	container = c
	return container, nil
}

func shutdown(ctx context.Context) error {
	defer logger.Sync() //nolint:errcheck
	if container == nil {
		return nil
	}
	c := container
	container = nil
	return c.Stop(ctx)
}

func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		shutdown(ctx) //nolint:errcheck
		if !isReported(err) {
			ui.PrintError(err.Error())
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Plain output without colors or spinners (useful for scripting)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")
}
