package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/models"
)

func TestProjectCreateFillsGeneratedID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects (title, description, staff_id, available) VALUES ($1, $2, $3, $4) RETURNING project_id")).
		WithArgs("Compilers", "Build one", 2, models.ProjectAvailable).
		WillReturnRows(sqlmock.NewRows([]string{"project_id"}).AddRow(10))

	project := &models.Project{Title: "Compilers", Description: "Build one", StaffID: 2, Available: models.ProjectAvailable}
	require.NoError(t, repo.Create(context.Background(), project))
	assert.Equal(t, 10, project.ID)
}

func TestProjectListAllJoinsStaffName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	rows := sqlmock.NewRows([]string{"project_id", "title", "description", "staff_id", "available", "staff_name"}).
		AddRow(10, "Compilers", "Build one", 2, models.ProjectAvailable, "Bob")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON p.staff_id = u.user_id")).
		WillReturnRows(rows)

	projects, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Bob", projects[0].StaffName)
}

func TestProjectMakeUnavailableWritesZero(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET available = $1 WHERE project_id = $2")).
		WithArgs(models.ProjectUnavailable, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MakeUnavailable(context.Background(), 10))
	require.NoError(t, mock.ExpectationsWereMet())
}
