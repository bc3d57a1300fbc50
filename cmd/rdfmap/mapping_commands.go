package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rdfmap/internal/mappingdoc"
	"rdfmap/internal/webapi"
	"rdfmap/internal/workflow"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		useSemantic   bool
		minConfidence float64
		baseIRI       string
		targetClass   string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "generate PROJECT",
		Short: "Generate a column-to-ontology mapping",
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

			opts := webapi.GenerateOptions{
				UseSemantic:   useSemantic,
				MinConfidence: minConfidence,
				BaseIRI:       baseIRI,
				TargetClass:   targetClass,
			}
			if !cmd.Flags().Changed("semantic") {
				opts.UseSemantic = cfg.Mapping.UseSemantic
			}
			if !cmd.Flags().Changed("min-confidence") {
				opts.MinConfidence = cfg.Mapping.MinConfidence
			}
			if opts.BaseIRI == "" {
				opts.BaseIRI = cfg.Mapping.BaseIRI
			}
			if opts.TargetClass == "" {
				opts.TargetClass = cfg.Mapping.TargetClass
			}

			outcome, err := service.Generate(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, outcome.Result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mapping generated for project %s\n", args[0])
			switch outcome.Source {
			case workflow.StatsMissing:
				fmt.Fprintln(out, "No mapping statistics reported")
			default:
				fmt.Fprintf(out, "Mapped %d of %d columns (%s)\n",
					outcome.Stats.MappedColumns, outcome.Stats.TotalColumns, outcome.Stats.FormatRate())
			}
			if summary := outcome.Result.MappingSummary; summary != nil && len(summary.Sheets) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Sheet", "Mapped", "Total"},
					buildSheetSummaryRows(summary.Sheets),
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
			}
			if preview := outcome.Result.MappingPreview; preview != nil {
				fmt.Fprintf(out, "Base IRI: %s  Target class: %s  Columns: %d\n",
					orDash(preview.BaseIRI), orDash(preview.TargetClass), preview.ColumnCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useSemantic, "semantic", false, "Use semantic column matching")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Minimum alignment confidence (0-1)")
	cmd.Flags().StringVar(&baseIRI, "base-iri", "", "Base IRI for generated resources")
	cmd.Flags().StringVar(&targetClass, "target-class", "", "Ontology class rows instantiate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildSheetSummaryRows(sheets []webapi.SheetSummary) [][]string {
	rows := make([][]string, 0, len(sheets))
	for _, sheet := range sheets {
		rows = append(rows, []string{
			sheet.Sheet,
			strconv.Itoa(sheet.MappedColumns),
			strconv.Itoa(sheet.TotalColumns),
		})
	}
	return rows
}

func newMappingCommand(ctx *commandContext) *cobra.Command {
	mappingCmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the generated mapping document",
	}
	mappingCmd.AddCommand(newMappingShowCommand(ctx))
	return mappingCmd
}

func newMappingShowCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Print the mapping document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.service()
			if err != nil {
				return err
			}
			view := service.Mapping(args[0])

			if raw {
				text, err := view.RawDocument(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			doc, err := view.Document(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if doc.Defaults.BaseIRI != "" {
				fmt.Fprintf(out, "Base IRI: %s\n", doc.Defaults.BaseIRI)
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Sheet", "Class", "Mapped", "Total"},
				buildSheetStatsRows(doc),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw YAML instead of the per-sheet summary")
	return cmd
}

func buildSheetStatsRows(doc *mappingdoc.Document) [][]string {
	stats := doc.Summary()
	classes := make(map[string]string, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		classes[sheet.Name] = sheet.RowResource.Class
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Sheet,
			orDash(classes[s.Sheet]),
			strconv.Itoa(s.MappedColumns),
			strconv.Itoa(s.TotalColumns),
		})
	}
	return rows
}
