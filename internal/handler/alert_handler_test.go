package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
)

type stubAlertRepo struct {
	alerts map[string]*models.HeatAlert
}

func (r *stubAlertRepo) List(context.Context, models.HeatAlertFilter) ([]models.HeatAlert, int, error) {
	out := make([]models.HeatAlert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		out = append(out, *alert)
	}
	return out, len(out), nil
}

func (r *stubAlertRepo) MarkRead(_ context.Context, id string) error {
	alert, ok := r.alerts[id]
	if !ok {
		return sql.ErrNoRows
	}
	alert.IsRead = true
	return nil
}

func (r *stubAlertRepo) Dismiss(_ context.Context, id string) error {
	alert, ok := r.alerts[id]
	if !ok {
		return sql.ErrNoRows
	}
	alert.IsDismissed = true
	return nil
}

func newAlertHandlerForTest(repo *stubAlertRepo) *AlertHandler {
	return NewAlertHandler(service.NewAlertService(repo, zap.NewNop()))
}

func TestAlertHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubAlertRepo{alerts: map[string]*models.HeatAlert{
		"alert-1": {ID: "alert-1", CowID: "cow-1", UserID: "user-1", Title: "Heat Detected"},
	}}
	handler := newAlertHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts?user_id=user-1", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.HeatAlert `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Heat Detected", envelope.Data[0].Title)
}

func TestAlertHandlerMarkRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubAlertRepo{alerts: map[string]*models.HeatAlert{
		"alert-1": {ID: "alert-1"},
	}}
	handler := newAlertHandlerForTest(repo)

	router := gin.New()
	router.PATCH("/alerts/:id/read", handler.MarkRead)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/alerts/alert-1/read", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, repo.alerts["alert-1"].IsRead)
}

func TestAlertHandlerDismissNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAlertHandlerForTest(&stubAlertRepo{alerts: map[string]*models.HeatAlert{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/alerts/missing/dismiss", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Dismiss(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
