package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allocatr/psa-api/internal/models"
)

var (
	loginUsername string
	loginPassword string
	loginAsStaff  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearSession()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginUsername == "" || loginPassword == "" {
		return cmd.Help()
	}

	typeID := models.RoleStudent
	if loginAsStaff {
		typeID = models.RoleStaff
	}

	c, _ := apiClient()
	result, err := c.Login(cmd.Context(), models.LoginRequest{
		Username: loginUsername,
		Password: loginPassword,
		TypeID:   typeID,
	})
	if err != nil {
		return err
	}

	if err := saveSession(&session{ServerURL: serverURL, Token: result.AccessToken, User: result.User}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", result.User.Name, result.User.TypeID.Description())
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	c, s := apiClient()
	if s == nil {
		return fmt.Errorf("not logged in")
	}
	info, err := c.Me(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s), id %d\n", info.Name, info.TypeID.Description(), info.ID)
	return nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (required)")
	loginCmd.Flags().BoolVar(&loginAsStaff, "staff", false, "log in as staff instead of student")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
