package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        user_id SERIAL PRIMARY KEY,
        name VARCHAR(255),
        username VARCHAR(255) NOT NULL,
        password VARCHAR(255) NOT NULL,
        type_id INT
    )`,
	`CREATE TABLE IF NOT EXISTS projects (
        project_id SERIAL PRIMARY KEY,
        title VARCHAR(255) NOT NULL,
        description TEXT,
        staff_id INT,
        available INT,
        FOREIGN KEY (staff_id) REFERENCES users(user_id)
    )`,
	`CREATE TABLE IF NOT EXISTS project_registrations (
        registration_id SERIAL PRIMARY KEY,
        project_id INT,
        student_id INT,
        registration_state INT NOT NULL,
        FOREIGN KEY (project_id) REFERENCES projects(project_id),
        FOREIGN KEY (student_id) REFERENCES users(user_id)
    )`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
        id UUID PRIMARY KEY,
        user_id INT,
        action VARCHAR(64) NOT NULL,
        resource VARCHAR(64) NOT NULL,
        detail JSONB,
        ip_address VARCHAR(64),
        user_agent TEXT,
        created_at TIMESTAMPTZ NOT NULL
    )`,
}

var seedStatements = []string{
	`INSERT INTO users (name, username, password, type_id) VALUES ('Student John Doe', '20240001', 'password', 1)`,
	`INSERT INTO users (name, username, password, type_id) VALUES ('Staff Jim Beam', '20240002', 'password', 2)`,
	`INSERT INTO users (name, username, password, type_id) VALUES ('Student Jill Hill', '20240003', 'password', 1)`,
	`INSERT INTO users (name, username, password, type_id) VALUES ('Staff Jack Black', '20240004', 'password', 2)`,
	`INSERT INTO projects (title, description, staff_id, available) VALUES ('Responsive Website Development', 'Develop a responsive website for a local charity, focusing on mobile and desktop compatibility.', 2, 1)`,
	`INSERT INTO projects (title, description, staff_id, available) VALUES ('Machine Learning for Predictive Analysis', 'Create a machine learning model to predict customer churn based on historical data.', 2, 1)`,
	`INSERT INTO projects (title, description, staff_id, available) VALUES ('IoT Home Automation System', 'Develop an IoT system that allows users to control home appliances remotely via a web interface.', 4, 1)`,
	`INSERT INTO projects (title, description, staff_id, available) VALUES ('Health Monitoring Mobile App', 'Develop a mobile application that tracks and provides insights on users'' health metrics.', 4, 1)`,
	`INSERT INTO project_registrations (project_id, student_id, registration_state) VALUES (1, 1, 1)`,
	`INSERT INTO project_registrations (project_id, student_id, registration_state) VALUES (2, 1, 1)`,
	`INSERT INTO project_registrations (project_id, student_id, registration_state) VALUES (2, 3, 1)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedSampleData loads the demo users, projects and registrations. It only
// runs against an empty users table so restarts do not duplicate rows.
func SeedSampleData(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("count users before seed: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, stmt := range seedStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}
	return nil
}
