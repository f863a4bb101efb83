package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
)

type mockSelectionRepo struct {
	items   map[string]*models.SelectedClass
	deleted []string
}

func (m *mockSelectionRepo) Create(ctx context.Context, entry *models.SelectedClass) error {
	if m.items == nil {
		m.items = make(map[string]*models.SelectedClass)
	}
	if entry.ID == "" {
		entry.ID = "generated"
	}
	cp := *entry
	m.items[entry.ID] = &cp
	return nil
}

func (m *mockSelectionRepo) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	if entry, ok := m.items[id]; ok {
		cp := *entry
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSelectionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSelectionRepo) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	entries := make([]models.SelectedClass, 0)
	for _, entry := range m.items {
		if entry.Email == email {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func TestSelectionServiceSelect(t *testing.T) {
	repo := &mockSelectionRepo{}
	service := NewSelectionService(repo, validator.New(), zap.NewNop())

	entry, err := service.Select(context.Background(), SelectClassRequest{
		Email:   "user@example.com",
		ClassID: "c1",
		Title:   "Archery",
		Price:   25,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Len(t, repo.items, 1)
}

func TestSelectionServiceSelectValidation(t *testing.T) {
	service := NewSelectionService(&mockSelectionRepo{}, validator.New(), zap.NewNop())

	_, err := service.Select(context.Background(), SelectClassRequest{Email: "user@example.com"})
	require.Error(t, err)
}

func TestSelectionServiceListForEmptyEmail(t *testing.T) {
	service := NewSelectionService(&mockSelectionRepo{}, validator.New(), zap.NewNop())

	entries, err := service.ListFor(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSelectionServiceRemove(t *testing.T) {
	repo := &mockSelectionRepo{items: map[string]*models.SelectedClass{
		"s1": {ID: "s1", Email: "user@example.com", ClassID: "c1", Title: "Archery"},
	}}
	service := NewSelectionService(repo, validator.New(), zap.NewNop())

	err := service.Remove(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, repo.deleted)
}

func TestSelectionServiceGetMissing(t *testing.T) {
	service := NewSelectionService(&mockSelectionRepo{}, validator.New(), zap.NewNop())

	_, err := service.Get(context.Background(), "missing")
	require.Error(t, err)
}
