package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rdfmap/internal/webapi"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage conversion projects",
	}

	projectsCmd.AddCommand(newProjectsListCommand(ctx))
	projectsCmd.AddCommand(newProjectsCreateCommand(ctx))
	projectsCmd.AddCommand(newProjectsShowCommand(ctx))
	projectsCmd.AddCommand(newProjectsDeleteCommand(ctx))

	return projectsCmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects")
				return nil
			}
			out := renderTable(
				[]string{"ID", "Name", "Status", "Data", "Ontology", "Updated"},
				buildProjectRows(projects),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildProjectRows(projects []webapi.Project) [][]string {
	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{
			project.ID,
			truncate(project.Name, 40),
			statusLabel(project.Status),
			yesNo(project.DataFile != ""),
			yesNo(project.OntologyFile != ""),
			formatTimestamp(project.UpdatedAt),
		})
	}
	return rows
}

func newProjectsCreateCommand(ctx *commandContext) *cobra.Command {
	var description string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			project, err := client.CreateProject(cmd.Context(), webapi.ProjectCreate{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, project)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newProjectsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			project, err := client.GetProject(cmd.Context(), args[0])
			if err != nil {
				if webapi.IsNotFound(err) {
					return fmt.Errorf("project %s not found", args[0])
				}
				return err
			}
			if asJSON {
				return writeJSON(cmd, project)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:     %s\n", project.Name)
			fmt.Fprintf(out, "ID:          %s\n", project.ID)
			fmt.Fprintf(out, "Status:      %s\n", statusLabel(project.Status))
			fmt.Fprintf(out, "Description: %s\n", orDash(project.Description))
			fmt.Fprintf(out, "Data file:   %s\n", orDash(project.DataFile))
			fmt.Fprintf(out, "Ontology:    %s\n", orDash(project.OntologyFile))
			fmt.Fprintf(out, "Created:     %s\n", formatTimestamp(project.CreatedAt))
			fmt.Fprintf(out, "Updated:     %s\n", formatTimestamp(project.UpdatedAt))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newProjectsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT",
		Short: "Delete a project and its uploads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
				if webapi.IsNotFound(err) {
					return fmt.Errorf("project %s not found", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}
