package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allocatr/psa-api/internal/models"
)

var interestCmd = &cobra.Command{
	Use:   "interest <projectId>",
	Short: "Express interest in a project (student)",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterest,
}

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List your registrations",
	Long: `List registrations for the logged-in user. Students see their own
interest and assignment; staff see every registration across their projects.`,
	RunE: runRegistrations,
}

var assignCmd = &cobra.Command{
	Use:   "assign <registrationId>",
	Short: "Approve a registration (staff)",
	RunE:  runAssign,
	Args:  cobra.ExactArgs(1),
}

func runInterest(cmd *cobra.Command, args []string) error {
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	c, s := apiClient()
	if s == nil {
		return fmt.Errorf("not logged in")
	}
	registration, err := c.RegisterInterest(cmd.Context(), projectID, s.User.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Registered interest in project %d (registration %d)\n", registration.ProjectID, registration.ID)
	return nil
}

func runRegistrations(cmd *cobra.Command, args []string) error {
	c, s := apiClient()
	if s == nil {
		return fmt.Errorf("not logged in")
	}

	var (
		details []models.RegistrationDetail
		err     error
	)
	if s.User.TypeID == models.RoleStaff {
		details, err = c.StaffRegistrations(cmd.Context(), s.User.ID)
	} else {
		details, err = c.StudentRegistrations(cmd.Context(), s.User.ID)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tSTUDENT\tSTAFF\tSTATE")
	for _, d := range details {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.ProjectTitle, d.StudentName, d.StaffName, d.State.Description())
	}
	w.Flush()
	return nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	registrationID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid registration id %q", args[0])
	}
	c, _ := apiClient()
	if err := c.Assign(cmd.Context(), registrationID); err != nil {
		return err
	}
	fmt.Printf("Registration %d assigned; other interest from the student was withdrawn\n", registrationID)
	return nil
}

func init() {
	rootCmd.AddCommand(interestCmd, registrationsCmd, assignCmd)
}
