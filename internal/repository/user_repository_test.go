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

func TestUserCreateFillsGeneratedID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, username, password, type_id) VALUES ($1, $2, $3, $4) RETURNING user_id")).
		WithArgs("Alice", "20240001", "password", models.RoleStudent).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(5))

	user := &models.User{Name: "Alice", Username: "20240001", Password: "password", TypeID: models.RoleStudent}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, 5, user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "name", "username", "password", "type_id"}).
		AddRow(1, "Alice", "20240001", "password", models.RoleStudent)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, username, password, type_id FROM users WHERE username = $1 LIMIT 1")).
		WithArgs("20240001").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "20240001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserUpdatePassword(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = $1 WHERE user_id = $2")).
		WithArgs("changed", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), 1, "changed"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateAuditLogGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	log := &models.AuditLog{Action: "create", Resource: "registration"}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
}
