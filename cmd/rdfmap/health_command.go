package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the RDFMap server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Server", statusInfo, cfg.Server.BaseURL, colorize))

			health, err := client.Health(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Health", statusError, err.Error(), colorize))
				return fmt.Errorf("health check failed")
			}

			kind := statusOK
			if health.Status != "healthy" {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Health", kind, health.Status, colorize))
			if health.RDFMapVersion != "" {
				fmt.Fprintln(out, renderStatusLine("Version", statusInfo, health.RDFMapVersion, colorize))
			}
			return nil
		},
	}
}
