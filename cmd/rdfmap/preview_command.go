package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rdfmap/internal/webapi"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview PROJECT",
		Short: "Preview the uploaded data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			preview, err := client.DataPreview(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, preview)
			}
			if preview.Error != "" {
				return fmt.Errorf("data preview: %s", preview.Error)
			}

			out := cmd.OutOrStdout()
			table := renderTable(
				[]string{"Column", "Type", "Identifier", "Foreign Key", "Samples"},
				buildPreviewColumnRows(preview.Columns),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(out, table)
			fmt.Fprintf(out, "%d columns, %d rows (showing %d)\n",
				preview.TotalColumns, preview.RowCount, preview.Showing)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of rows to preview")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildPreviewColumnRows(columns []webapi.PreviewColumn) [][]string {
	rows := make([][]string, 0, len(columns))
	for _, column := range columns {
		samples := make([]string, 0, len(column.SampleValues))
		for _, sample := range column.SampleValues {
			samples = append(samples, truncate(sample, 20))
		}
		rows = append(rows, []string{
			column.Name,
			column.InferredType,
			yesNo(column.IsIdentifier),
			yesNo(column.IsForeignKey),
			truncate(strings.Join(samples, ", "), 60),
		})
	}
	return rows
}

func newOntologyCommand(ctx *commandContext) *cobra.Command {
	ontologyCmd := &cobra.Command{
		Use:   "ontology",
		Short: "Inspect the uploaded ontology",
	}
	ontologyCmd.AddCommand(newOntologyAnalyzeCommand(ctx))
	return ontologyCmd
}

func newOntologyAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze PROJECT",
		Short: "Summarize classes and properties of the ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			analysis, err := client.OntologyAnalysis(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, analysis)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Classes: %d  Properties: %d\n\n",
				analysis.TotalClasses, analysis.TotalProperties)
			if len(analysis.Classes) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Class", "Label"},
					buildOntologyClassRows(analysis.Classes),
					[]columnAlignment{alignLeft, alignLeft},
				))
			}
			if len(analysis.Properties) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Property", "Type", "Domain", "Range"},
					buildOntologyPropertyRows(analysis.Properties),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildOntologyClassRows(classes []webapi.OntologyClass) [][]string {
	rows := make([][]string, 0, len(classes))
	for _, class := range classes {
		label := class.Label
		if label == "" {
			label = class.SKOSLabels.PrefLabel
		}
		rows = append(rows, []string{truncate(class.URI, 60), orDash(label)})
	}
	return rows
}

func buildOntologyPropertyRows(properties []webapi.OntologyProperty) [][]string {
	rows := make([][]string, 0, len(properties))
	for _, property := range properties {
		rows = append(rows, []string{
			truncate(property.URI, 60),
			orDash(property.PropertyType),
			truncate(orDash(property.Domain), 40),
			truncate(orDash(property.Range), 40),
		})
	}
	return rows
}
