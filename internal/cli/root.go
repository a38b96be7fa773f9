// Package cli provides the command-line interface for shopcopilot.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rvasani/shopcopilot/internal/auth"
	"github.com/rvasani/shopcopilot/internal/client"
	"github.com/rvasani/shopcopilot/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and collaborators, initialized in PersistentPreRunE.
	cfg        config.Config
	backend    *client.Client
	credsStore *auth.Store
	authCtx    *auth.Context
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopcopilot",
	Short: "Terminal client for the Shopping Copilot backend",
	Long: `Shopcopilot is a terminal client for a Shopping Copilot backend.

Chat in natural language, optionally attach an image, and get the
assistant's reply together with matched products. Log in once and the
session token rides along with every request.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		backend = client.New(cfg.BackendURL, cfg.Timeout)
		credsStore = auth.NewStore(cfg.CredentialsPath)

		var err error
		authCtx, err = credsStore.Load()
		if err != nil {
			// A broken credential file degrades to anonymous mode.
			logger.Warn("failed to load credentials, continuing anonymous", "error", err)
			authCtx = nil
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}
