package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rdfmap/internal/jobs"
	"rdfmap/internal/jobstore"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Track background conversion jobs",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	jobsCmd.AddCommand(newJobsWatchCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *jobstore.Store) error {
				listed, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, listed)
				}
				if len(listed) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tracked jobs")
					return nil
				}
				out := renderTable(
					[]string{"Task", "Project", "Status", "Format", "Triples", "Updated"},
					buildJobRows(listed),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of jobs to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildJobRows(listed []*jobstore.Job) [][]string {
	rows := make([][]string, 0, len(listed))
	for _, job := range listed {
		triples := "-"
		if job.Status == jobstore.StatusSucceeded {
			triples = strconv.FormatInt(job.TripleCount, 10)
		}
		updated := job.UpdatedAt
		rows = append(rows, []string{
			job.TaskID,
			job.ProjectID,
			statusLabel(string(job.Status)),
			orDash(job.OutputFormat),
			triples,
			formatTimestamp(&updated),
		})
	}
	return rows
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show TASK",
		Short: "Show one job, refreshed from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *jobstore.Store) error {
				taskID := args[0]
				status, err := client.JobStatus(cmd.Context(), taskID)
				if err != nil {
					return err
				}

				// Mirror the live state into the local store.
				switch status.Status {
				case "SUCCESS":
					var outputFile string
					var tripleCount int64
					if status.Result != nil {
						outputFile = status.Result.OutputFile
						tripleCount = status.Result.TripleCount
					}
					_ = store.MarkSucceeded(cmd.Context(), taskID, outputFile, tripleCount)
				case "FAILURE":
					message := status.Error
					if message == "" && status.Result != nil {
						message = status.Result.Error
					}
					_ = store.MarkFailed(cmd.Context(), taskID, message)
				}

				if asJSON {
					return writeJSON(cmd, status)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Task:   %s\n", status.TaskID)
				fmt.Fprintf(out, "Status: %s\n", statusLabel(status.Status))
				if status.Result != nil {
					if status.Result.OutputFile != "" {
						fmt.Fprintf(out, "Output: %s\n", status.Result.OutputFile)
					}
					if status.Result.TripleCount > 0 {
						fmt.Fprintf(out, "Triples: %d\n", status.Result.TripleCount)
					}
				}
				if status.Error != "" {
					fmt.Fprintf(out, "Error:  %s\n", status.Error)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newJobsWatchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [TASK]",
		Short: "Poll a job until it finishes",
		Long: "Poll a job until it finishes. Without an argument the most recently " +
			"queued unfinished job is watched.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *jobstore.Store) error {
				var taskID string
				if len(args) == 1 {
					taskID = args[0]
				} else {
					latest, err := store.Latest(cmd.Context())
					if err != nil {
						return err
					}
					if latest == nil {
						return errors.New("no tracked jobs; queue one with `rdfmap convert --background`")
					}
					if latest.Status.IsTerminal() {
						return fmt.Errorf("latest job %s already finished (%s)", latest.TaskID, latest.Status)
					}
					taskID = latest.TaskID
					fmt.Fprintf(cmd.OutOrStdout(), "Watching job %s\n", taskID)
				}
				var extra []jobs.PollerOption
				if cmd.Flags().Changed("interval") {
					extra = append(extra, jobs.WithInterval(interval))
				}
				return watchTask(cmd, ctx, store, taskID, asJSON, extra...)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the final result as JSON")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (defaults to the configured value)")
	return cmd
}
