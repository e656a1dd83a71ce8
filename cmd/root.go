// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the promptsql CLI.
// It implements subcommands for asking the query service questions in natural
// language, an interactive shell, configuration and token management, using the
// Cobra CLI framework with pterm for terminal output.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"promptsql/cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	showVersion    bool
	verbose        bool
	serverOverride string
)

// errFailedOutcome makes the process exit non-zero without printing anything;
// the failure has already been rendered on the display.
var errFailedOutcome = errors.New("request did not succeed")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "promptsql",
	Short: "Ask a SQL database questions in natural language",
	Long: `promptsql sends natural-language prompts to a query service, which turns them
into SQL, runs them and returns the generated query together with its result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("promptsql %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailedOutcome) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr at debug level")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Query service base URL (overrides config and "+config.EnvServer+")")
}
