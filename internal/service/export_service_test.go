package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

type stubLister struct {
	details []models.RegistrationDetail
	err     error
}

func (s *stubLister) ListByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.details, nil
}

func TestExportCSV(t *testing.T) {
	lister := &stubLister{details: []models.RegistrationDetail{
		{
			Registration: models.Registration{ID: 201, ProjectID: 10, StudentID: 1, State: models.StateAssigned},
			StudentName:  "Alice",
			ProjectTitle: "Compilers",
			StaffName:    "Bob",
		},
	}}
	svc := NewExportService(lister, nil)

	result, err := svc.StaffRegistrations(context.Background(), 2, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "registrations-staff-2.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	body := string(result.Data)
	assert.True(t, strings.Contains(body, "Alice"))
	assert.True(t, strings.Contains(body, "Assigned"))
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(&stubLister{}, nil)

	result, err := svc.StaffRegistrations(context.Background(), 2, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubLister{}, nil)

	_, err := svc.StaffRegistrations(context.Background(), 2, "xlsx")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

// The role gate lives in the listing underneath; its rejections pass through
// untouched.
func TestExportPropagatesRoleRejection(t *testing.T) {
	svc := NewExportService(&stubLister{err: appErrors.ErrNotAStaff}, nil)

	_, err := svc.StaffRegistrations(context.Background(), 1, ExportFormatCSV)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAStaff))
}
