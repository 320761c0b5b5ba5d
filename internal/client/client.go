// Package client is a typed HTTP client for the allocation API. The psactl
// terminal tool is its only in-tree consumer, but nothing in it is tool
// specific.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
)

// envelope mirrors the server's response wrapper with the payload left raw
// so each call can decode into its own type.
type envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Client talks to a running allocation API server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New constructs a Client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if env.Error != nil {
		return env.Error
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

// Login authenticates and returns the token response. The client keeps the
// token for subsequent calls.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var result models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", req, &result); err != nil {
		return nil, err
	}
	c.token = result.AccessToken
	return &result, nil
}

// CreateUser signs up a new user.
func (c *Client) CreateUser(ctx context.Context, req service.CreateUserRequest) (*models.UserInfo, error) {
	var info models.UserInfo
	if err := c.do(ctx, http.MethodPost, "/user", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.UserInfo, error) {
	var info models.UserInfo
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Projects lists every project in the catalog.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/project/all", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project fetches a single project.
func (c *Client) Project(ctx context.Context, id int) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/project/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject stores a new project.
func (c *Client) CreateProject(ctx context.Context, req service.CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodPost, "/project/create", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// StaffProjects lists a staff member's projects.
func (c *Client) StaffProjects(ctx context.Context, staffID int) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/project/staff/%d", staffID), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// MakeUnavailable marks a project as closed to new interest.
func (c *Client) MakeUnavailable(ctx context.Context, projectID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/project/make-unavailable/%d", projectID), nil, nil)
}

// RegisterInterest expresses a student's interest in a project.
func (c *Client) RegisterInterest(ctx context.Context, projectID, studentID int) (*models.Registration, error) {
	req := service.RegisterRequest{ProjectID: projectID, StudentID: studentID}
	var registration models.Registration
	if err := c.do(ctx, http.MethodPost, "/registration/create", req, &registration); err != nil {
		return nil, err
	}
	return &registration, nil
}

// StudentRegistrations lists a student's registrations.
func (c *Client) StudentRegistrations(ctx context.Context, studentID int) ([]models.RegistrationDetail, error) {
	var details []models.RegistrationDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/registration/student/%d", studentID), nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// StaffRegistrations lists registrations across a staff member's projects.
func (c *Client) StaffRegistrations(ctx context.Context, staffID int) ([]models.RegistrationDetail, error) {
	var details []models.RegistrationDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/registration/students-registration/%d", staffID), nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// Assign approves a registration.
func (c *Client) Assign(ctx context.Context, registrationID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/registration/assign/%d", registrationID), nil, nil)
}

// IsAssigned reports whether a student already holds an assignment.
func (c *Client) IsAssigned(ctx context.Context, studentID int) (bool, error) {
	var result struct {
		Assigned bool `json:"assigned"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/registration/student/%d/assigned", studentID), nil, &result); err != nil {
		return false, err
	}
	return result.Assigned, nil
}
