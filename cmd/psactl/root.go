package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/allocatr/psa-api/internal/client"
	"github.com/allocatr/psa-api/internal/models"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "psactl",
	Short: "Terminal client for the project allocation API",
	Long: `psactl drives the project allocation API from the terminal.

Students browse the catalog and express interest in projects; staff review
the interest on their projects and approve one student per project. Log in
first; the session token is kept in a local file and reused by every
command.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "API base URL")
}

// session is the state persisted between invocations.
type session struct {
	ServerURL string          `json:"server_url"`
	Token     string          `json:"token"`
	User      models.UserInfo `json:"user"`
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "psactl", "session.json"), nil
}

func saveSession(s *session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o600)
}

func loadSession() (*session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// apiClient builds a client against --server, attaching the stored session
// token when one exists.
func apiClient() (*client.Client, *session) {
	c := client.New(serverURL)
	s, err := loadSession()
	if err != nil {
		return c, nil
	}
	c.SetToken(s.Token)
	return c, s
}
