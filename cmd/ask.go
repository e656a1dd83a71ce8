// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var askFromStdin bool

// askCmd submits a single prompt and renders the outcome.
var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send one prompt to the query service",
	Long: `The ask command sends one natural-language prompt to the query service and
prints the generated SQL and its result, or the error the service reported.

Arguments are joined with spaces. With --stdin the prompt is read from standard
input instead. The prompt is sent as-is, even when empty; validation is left to
the service. The command exits non-zero when the request did not succeed.`,
	Example: `  promptsql ask "total loan amount by branch in 2024"
  echo "top 5 borrowers by outstanding balance" | promptsql ask --stdin`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		if askFromStdin {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			prompt = strings.TrimRight(string(b), "\r\n")
		}

		sess, err := newSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer sess.Close()

		if !sess.submit(cmd.Context(), prompt) {
			return errFailedOutcome
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askFromStdin, "stdin", false, "Read the prompt from standard input")
}
