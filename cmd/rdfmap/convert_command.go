package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rdfmap/internal/jobs"
	"rdfmap/internal/jobstore"
	"rdfmap/internal/webapi"
	"rdfmap/internal/workflow"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		format     string
		validate   bool
		background bool
		detach     bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "convert PROJECT",
		Short: "Convert the project's data to RDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req := workflow.ConvertRequest{
				ProjectID:    args[0],
				OutputFormat: format,
				Validate:     validate,
			}
			if req.OutputFormat == "" {
				req.OutputFormat = cfg.Conversion.OutputFormat
			}
			if !cmd.Flags().Changed("validate") {
				req.Validate = cfg.Conversion.Validate
			}

			if !background {
				service, err := ctx.service()
				if err != nil {
					return err
				}
				result, err := service.ConvertSync(cmd.Context(), req)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, result)
				}
				printConversionResult(cmd.OutOrStdout(), result)
				return nil
			}

			if detach && asJSON {
				return errors.New("--json requires waiting for the result; drop --detach")
			}

			return ctx.trackedService(func(service *workflow.Service, store *jobstore.Store) error {
				queued, err := service.ConvertBackground(cmd.Context(), req)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Queued conversion task %s\n", queued.TaskID)
				if detach {
					fmt.Fprintf(out, "Follow it with: rdfmap jobs watch %s\n", queued.TaskID)
					return nil
				}
				return watchTask(cmd, ctx, store, queued.TaskID, asJSON)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, json-ld, xml, nt, n3)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the generated RDF")
	cmd.Flags().BoolVarP(&background, "background", "b", false, "Run as a background job")
	cmd.Flags().BoolVar(&detach, "detach", false, "Do not wait for the background job")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// watchTask drives a job tracker until the task terminates, mirroring its
// progress into the job store.
func watchTask(cmd *cobra.Command, ctx *commandContext, store *jobstore.Store, taskID string, asJSON bool, extra ...jobs.PollerOption) error {
	out := cmd.OutOrStdout()
	running := false
	opts := append([]jobs.PollerOption{jobs.WithStatusCallback(func(status *webapi.JobStatus) {
		if !running {
			running = true
			_ = store.MarkRunning(cmd.Context(), taskID)
		}
		if !asJSON {
			fmt.Fprintf(out, "  %s...\n", statusLabel(status.Status))
		}
	})}, extra...)
	poller, err := ctx.poller(opts...)
	if err != nil {
		return err
	}
	tracker := jobs.NewTracker(poller)
	<-tracker.Watch(cmd.Context(), taskID)

	snap := tracker.Snapshot()
	switch snap.State {
	case jobs.Completed:
	case jobs.Failed:
		var jobErr *jobs.JobFailed
		if errors.As(snap.Err, &jobErr) {
			_ = store.MarkFailed(cmd.Context(), taskID, jobErr.Message)
		}
		return snap.Err
	default:
		// Idle here means the watch was cancelled before the job finished.
		return cmd.Context().Err()
	}

	var outputFile string
	var tripleCount int64
	if result := snap.Result; result != nil {
		outputFile = result.OutputFile
		tripleCount = result.TripleCount
	}
	if err := store.MarkSucceeded(cmd.Context(), taskID, outputFile, tripleCount); err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, snap.Result)
	}
	fmt.Fprintf(out, "Conversion finished: %d triples", tripleCount)
	if outputFile != "" {
		fmt.Fprintf(out, " -> %s", outputFile)
	}
	fmt.Fprintln(out)
	return nil
}

func printConversionResult(out io.Writer, result *webapi.ConversionResult) {
	fmt.Fprintf(out, "Converted %s: %d triples (%s)\n",
		result.ProjectID, result.TripleCount, orDash(result.Format))
	if result.OutputFile != "" {
		fmt.Fprintf(out, "Output: %s\n", result.OutputFile)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", errMsg)
	}
}
