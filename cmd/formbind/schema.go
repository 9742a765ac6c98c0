package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/internal/server"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <form>",
		Short: "Print the OpenAPI schema of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := server.NewOrchestrator(a.cfg, a.logger)
			if err != nil {
				return err
			}
			def, err := orch.Forms().Get(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(def.Schema.OpenAPI())
		},
	}
}
