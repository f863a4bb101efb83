package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
)

type mockEnrollmentRepo struct {
	entries []models.Enrollment
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = "generated"
	}
	m.entries = append(m.entries, *enrollment)
	return nil
}

func (m *mockEnrollmentRepo) ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error) {
	entries := make([]models.Enrollment, 0)
	for _, entry := range m.entries {
		if entry.Email == email {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func TestEnrollmentServiceRecord(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	service := NewEnrollmentService(repo, validator.New(), zap.NewNop())

	enrollment, err := service.Record(context.Background(), EnrollRequest{
		Email:          "user@example.com",
		ClassID:        "c1",
		Title:          "Archery",
		InstructorName: "Teacher One",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Len(t, repo.entries, 1)
}

func TestEnrollmentServiceRecordValidation(t *testing.T) {
	service := NewEnrollmentService(&mockEnrollmentRepo{}, validator.New(), zap.NewNop())

	_, err := service.Record(context.Background(), EnrollRequest{Email: "user@example.com"})
	require.Error(t, err)
}

func TestEnrollmentServiceListFor(t *testing.T) {
	repo := &mockEnrollmentRepo{entries: []models.Enrollment{
		{ID: "e1", Email: "a@example.com", ClassID: "c1", Title: "Archery"},
		{ID: "e2", Email: "b@example.com", ClassID: "c2", Title: "Sailing"},
	}}
	service := NewEnrollmentService(repo, validator.New(), zap.NewNop())

	entries, err := service.ListFor(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].ClassID)
}
