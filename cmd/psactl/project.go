package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
)

var (
	projectTitle       string
	projectDescription string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the project catalog",
	RunE:  runProjects,
}

var myProjectsCmd = &cobra.Command{
	Use:   "my-projects",
	Short: "List your own projects (staff)",
	RunE:  runMyProjects,
}

var createProjectCmd = &cobra.Command{
	Use:   "create-project",
	Short: "Create a project (staff)",
	RunE:  runCreateProject,
}

var closeProjectCmd = &cobra.Command{
	Use:   "close-project <projectId>",
	Short: "Mark a project unavailable",
	Args:  cobra.ExactArgs(1),
	RunE:  runCloseProject,
}

func printProjects(projects []models.Project) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTAFF\tAVAILABLE")
	for _, p := range projects {
		available := "yes"
		if p.Available != models.ProjectAvailable {
			available = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.StaffName, available)
	}
	w.Flush()
}

func runProjects(cmd *cobra.Command, args []string) error {
	c, _ := apiClient()
	projects, err := c.Projects(cmd.Context())
	if err != nil {
		return err
	}
	printProjects(projects)
	return nil
}

func runMyProjects(cmd *cobra.Command, args []string) error {
	c, s := apiClient()
	if s == nil {
		return fmt.Errorf("not logged in")
	}
	projects, err := c.StaffProjects(cmd.Context(), s.User.ID)
	if err != nil {
		return err
	}
	printProjects(projects)
	return nil
}

func runCreateProject(cmd *cobra.Command, args []string) error {
	if projectTitle == "" {
		return cmd.Help()
	}
	c, s := apiClient()
	if s == nil {
		return fmt.Errorf("not logged in")
	}
	project, err := c.CreateProject(cmd.Context(), service.CreateProjectRequest{
		Title:       projectTitle,
		Description: projectDescription,
		StaffID:     s.User.ID,
		Available:   models.ProjectAvailable,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created project %d: %s\n", project.ID, project.Title)
	return nil
}

func runCloseProject(cmd *cobra.Command, args []string) error {
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	c, _ := apiClient()
	if err := c.MakeUnavailable(cmd.Context(), projectID); err != nil {
		return err
	}
	fmt.Printf("Project %d is no longer taking interest\n", projectID)
	return nil
}

func init() {
	createProjectCmd.Flags().StringVarP(&projectTitle, "title", "t", "", "project title (required)")
	createProjectCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "project description")
	rootCmd.AddCommand(projectsCmd, myProjectsCmd, createProjectCmd, closeProjectCmd)
}
