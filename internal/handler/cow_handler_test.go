package handler

import (
	"bytes"
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

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

type stubCowRepo struct {
	cows map[string]*models.Cow
	tags map[string]bool
}

func newStubCowRepo() *stubCowRepo {
	return &stubCowRepo{cows: map[string]*models.Cow{}, tags: map[string]bool{}}
}

func (r *stubCowRepo) List(context.Context, models.CowFilter) ([]models.Cow, int, error) {
	out := make([]models.Cow, 0, len(r.cows))
	for _, cow := range r.cows {
		out = append(out, *cow)
	}
	return out, len(out), nil
}

func (r *stubCowRepo) FindByID(_ context.Context, id string) (*models.Cow, error) {
	cow, ok := r.cows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cow, nil
}

func (r *stubCowRepo) ExistsByTag(_ context.Context, userID, tagNumber, _ string) (bool, error) {
	return r.tags[userID+"/"+tagNumber], nil
}

func (r *stubCowRepo) Create(_ context.Context, cow *models.Cow) error {
	if cow.ID == "" {
		cow.ID = "cow-generated"
	}
	r.cows[cow.ID] = cow
	r.tags[cow.UserID+"/"+cow.TagNumber] = true
	return nil
}

func (r *stubCowRepo) Update(_ context.Context, cow *models.Cow) error {
	if _, ok := r.cows[cow.ID]; !ok {
		return sql.ErrNoRows
	}
	r.cows[cow.ID] = cow
	return nil
}

func (r *stubCowRepo) UpdateStatus(_ context.Context, id string, status models.CowStatus) error {
	cow, ok := r.cows[id]
	if !ok {
		return sql.ErrNoRows
	}
	cow.Status = status
	return nil
}

func (r *stubCowRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.cows, id)
	return nil
}

func newCowHandlerForTest(repo *stubCowRepo) *CowHandler {
	return NewCowHandler(service.NewCowService(repo, zap.NewNop()))
}

func TestCowHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCowHandlerForTest(newStubCowRepo())

	body := bytes.NewBufferString(`{"user_id":"user-1","tag_number":"A-001","name":"Bella"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cows", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "A-001", envelope.Data["tag_number"])
	assert.Equal(t, "healthy", envelope.Data["status"])
}

func TestCowHandlerCreateInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCowHandlerForTest(newStubCowRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cows", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCowHandlerCreateDuplicateTag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newStubCowRepo()
	repo.tags["user-1/A-001"] = true
	handler := newCowHandlerForTest(repo)

	body := bytes.NewBufferString(`{"user_id":"user-1","tag_number":"A-001"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cows", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Error["code"])
}

func TestCowHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCowHandlerForTest(newStubCowRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cows/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
}

func TestCowHandlerListRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCowHandlerForTest(newStubCowRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cows?status=flying", nil)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCowHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newStubCowRepo()
	repo.cows["cow-1"] = &models.Cow{ID: "cow-1", UserID: "user-1", TagNumber: "A-001", Status: models.CowStatusHealthy}
	handler := newCowHandlerForTest(repo)

	router := gin.New()
	router.DELETE("/cows/:id", handler.Delete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cows/cow-1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.cows)
}
