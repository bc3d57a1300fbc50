package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "download PROJECT",
		Short: "Download the converted RDF output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			service, err := ctx.service()
			if err != nil {
				return err
			}
			dir := destDir
			if dir == "" {
				dir = cfg.Paths.DownloadDir
			}
			path, err := service.Download(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "output", "o", "", "Destination directory (defaults to the configured download dir)")
	return cmd
}
