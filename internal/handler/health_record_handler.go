package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// HealthRecordHandler exposes veterinary record endpoints.
type HealthRecordHandler struct {
	health *service.HealthService
}

// NewHealthRecordHandler constructs HealthRecordHandler.
func NewHealthRecordHandler(health *service.HealthService) *HealthRecordHandler {
	return &HealthRecordHandler{health: health}
}

// List godoc
// @Summary List health records
// @Tags Health
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param cow_id query string false "Cow filter"
// @Param limit query int false "Max records"
// @Success 200 {object} response.Envelope
// @Router /health-records [get]
func (h *HealthRecordHandler) List(c *gin.Context) {
	var filter models.HealthRecordFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.CowID = c.Query("cow_id")
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.Limit = limit
	}

	records, err := h.health.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Get godoc
// @Summary Get health record detail
// @Tags Health
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /health-records/{id} [get]
func (h *HealthRecordHandler) Get(c *gin.Context) {
	record, err := h.health.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Create health record
// @Tags Health
// @Accept json
// @Produce json
// @Param payload body service.CreateHealthRecordRequest true "Record payload"
// @Success 201 {object} response.Envelope
// @Router /health-records [post]
func (h *HealthRecordHandler) Create(c *gin.Context) {
	var req service.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.UserID = resolveUserID(c, req.UserID)
	record, err := h.health.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update health record
// @Tags Health
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.UpdateHealthRecordRequest true "Record payload"
// @Success 200 {object} response.Envelope
// @Router /health-records/{id} [put]
func (h *HealthRecordHandler) Update(c *gin.Context) {
	var req service.UpdateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.health.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete health record
// @Tags Health
// @Param id path string true "Record ID"
// @Success 204
// @Router /health-records/{id} [delete]
func (h *HealthRecordHandler) Delete(c *gin.Context) {
	if err := h.health.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
