package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/internal/server"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/schema"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output  string
		theme   string
		variant string
		values  map[string]string
		submit  bool
	)
	cmd := &cobra.Command{
		Use:   "render <form>",
		Short: "Render a form as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := server.NewOrchestrator(a.cfg, a.logger)
			if err != nil {
				return err
			}
			input := schema.Values{}
			for path, v := range values {
				if err := schema.Assign(input, path, v); err != nil {
					return fmt.Errorf("value %q: %w", path, err)
				}
			}
			resp, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Form:         args[0],
				Values:       input,
				Validate:     !submit && len(values) > 0,
				Submit:       submit,
				ThemeName:    theme,
				ThemeVariant: variant,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(resp.Output)
				return err
			}
			if err := os.WriteFile(output, resp.Output, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&theme, "theme", "", "theme name")
	flags.StringVar(&variant, "variant", "", "theme variant")
	flags.StringToStringVar(&values, "value", nil, "field value as path=value; validates the form")
	flags.BoolVar(&submit, "submit", false, "submit the values instead of only validating them")
	return cmd
}
