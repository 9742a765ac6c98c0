package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/internal/server"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format   string
		reveal   bool
		attempts int
	)
	cmd := &cobra.Command{
		Use:   "prompt <form>",
		Short: "Fill a form interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown output format %q", format)
			}
			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
			}
			opts := []tui.Option{
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(outputFormat),
				tui.WithMaxAttempts(attempts),
			}
			if reveal {
				opts = append(opts, tui.WithRevealSecrets())
			}
			prompter, err := tui.New(opts...)
			if err != nil {
				return err
			}

			orch, err := server.NewOrchestrator(a.cfg, a.logger, prompter)
			if err != nil {
				return err
			}
			resp, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Form:     args[0],
				Renderer: prompter.Name(),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(resp.Output))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	flags.BoolVar(&reveal, "reveal-secrets", false, "print secret values instead of masking them")
	flags.IntVar(&attempts, "attempts", 3, "attempts per field before giving up")
	return cmd
}
