package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rdfmap/internal/workflow"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload project source files",
	}

	uploadCmd.AddCommand(newUploadTargetCommand(ctx, workflow.TargetData,
		"data PROJECT FILE", "Upload the tabular data file (csv, xlsx, json, xml)"))
	uploadCmd.AddCommand(newUploadTargetCommand(ctx, workflow.TargetOntology,
		"ontology PROJECT FILE", "Upload the ontology file (ttl, owl, rdf)"))

	return uploadCmd
}

func newUploadTargetCommand(ctx *commandContext, target workflow.Target, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.service()
			if err != nil {
				return err
			}
			result, err := service.Upload(cmd.Context(), args[0], target, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d bytes) to project %s\n",
				args[1], result.FileSize, args[0])
			return nil
		},
	}
}
