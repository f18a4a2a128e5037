package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type mockCowRepo struct {
	cows map[string]*models.Cow
	tags map[string]bool
}

func newMockCowRepo() *mockCowRepo {
	return &mockCowRepo{cows: map[string]*models.Cow{}, tags: map[string]bool{}}
}

func (m *mockCowRepo) List(ctx context.Context, filter models.CowFilter) ([]models.Cow, int, error) {
	var out []models.Cow
	for _, c := range m.cows {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockCowRepo) FindByID(ctx context.Context, id string) (*models.Cow, error) {
	cow, ok := m.cows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *cow
	return &copied, nil
}

func (m *mockCowRepo) ExistsByTag(ctx context.Context, userID, tagNumber, excludeID string) (bool, error) {
	return m.tags[userID+"/"+tagNumber], nil
}

func (m *mockCowRepo) Create(ctx context.Context, cow *models.Cow) error {
	cow.ID = "cow-1"
	m.cows[cow.ID] = cow
	m.tags[cow.UserID+"/"+cow.TagNumber] = true
	return nil
}

func (m *mockCowRepo) Update(ctx context.Context, cow *models.Cow) error {
	if _, ok := m.cows[cow.ID]; !ok {
		return sql.ErrNoRows
	}
	m.cows[cow.ID] = cow
	return nil
}

func (m *mockCowRepo) UpdateStatus(ctx context.Context, id string, status models.CowStatus) error {
	cow, ok := m.cows[id]
	if !ok {
		return sql.ErrNoRows
	}
	cow.Status = status
	return nil
}

func (m *mockCowRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.cows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.cows, id)
	return nil
}

func TestCowServiceCreateDefaultsToHealthy(t *testing.T) {
	repo := newMockCowRepo()
	svc := NewCowService(repo, zap.NewNop())

	cow, err := svc.Create(context.Background(), CreateCowRequest{UserID: "user-1", TagNumber: "T-100"})
	require.NoError(t, err)
	assert.Equal(t, models.CowStatusHealthy, cow.Status)
}

func TestCowServiceCreateDuplicateTag(t *testing.T) {
	repo := newMockCowRepo()
	repo.tags["user-1/T-100"] = true
	svc := NewCowService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCowRequest{UserID: "user-1", TagNumber: "T-100"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
}

func TestCowServiceCreateUnknownStatus(t *testing.T) {
	svc := NewCowService(newMockCowRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCowRequest{UserID: "user-1", TagNumber: "T-1", Status: "retired"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestCowServiceUpdateStatusTransition(t *testing.T) {
	repo := newMockCowRepo()
	repo.cows["cow-1"] = &models.Cow{ID: "cow-1", UserID: "user-1", TagNumber: "T-1", Status: models.CowStatusHealthy}
	svc := NewCowService(repo, zap.NewNop())

	status := "in_heat"
	updated, err := svc.Update(context.Background(), "cow-1", UpdateCowRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CowStatusInHeat, updated.Status)
}

func TestCowServiceUpdateAppliesUnexpectedTransition(t *testing.T) {
	repo := newMockCowRepo()
	repo.cows["cow-1"] = &models.Cow{ID: "cow-1", UserID: "user-1", TagNumber: "T-1", Status: models.CowStatusPregnant}
	svc := NewCowService(repo, zap.NewNop())

	status := "in_heat"
	updated, err := svc.Update(context.Background(), "cow-1", UpdateCowRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CowStatusInHeat, updated.Status)
}

func TestCowServiceGetNotFound(t *testing.T) {
	svc := NewCowService(newMockCowRepo(), zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
