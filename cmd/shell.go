// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"os"
	"sync"

	"promptsql/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var shellOverlap bool

// maxPromptBytes bounds a single line read by the shell.
const maxPromptBytes = 1 << 20

// shellCmd reads prompts line by line and submits each one.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt loop",
	Long: `The shell command reads prompts from standard input, one per line, and submits
each of them. Every submission overwrites the display with its own result.

With --overlap a new line is submitted without waiting for the previous request.
Only the most recent submission is rendered; responses to earlier prompts that
arrive later are discarded. End the session with Ctrl-D or Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx := cmd.Context()
		in := cmd.InOrStdin()
		interactive := false
		if f, ok := in.(*os.File); ok {
			interactive = terminal.IsInteractive(f)
		}
		if interactive {
			pterm.Info.Printfln("Connected to %s. Type a question and press Enter.", sess.cfg.ServerURL)
		}

		lines := make(chan string)
		go func() {
			defer close(lines)
			sc := bufio.NewScanner(in)
			sc.Buffer(make([]byte, 0, 64*1024), maxPromptBytes)
			for sc.Scan() {
				select {
				case lines <- sc.Text():
				case <-ctx.Done():
					return
				}
			}
		}()

		var wg sync.WaitGroup
		defer wg.Wait()
		for {
			if interactive {
				pterm.Print(pterm.NewStyle(pterm.FgLightCyan).Sprint("› "))
			}
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if shellOverlap {
					wg.Add(1)
					go func(prompt string) {
						defer wg.Done()
						sess.submit(ctx, prompt)
					}(line)
					continue
				}
				sess.submit(ctx, line)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellOverlap, "overlap", false, "Submit without waiting for the previous request")
}
