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

// BreedingHandler exposes breeding calendar endpoints.
type BreedingHandler struct {
	breeding *service.BreedingService
}

// NewBreedingHandler constructs BreedingHandler.
func NewBreedingHandler(breeding *service.BreedingService) *BreedingHandler {
	return &BreedingHandler{breeding: breeding}
}

// List godoc
// @Summary List breeding events
// @Tags Breeding
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param cow_id query string false "Cow filter"
// @Param event_type query string false "Event type filter"
// @Param status query string false "Status filter"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /breeding-events [get]
func (h *BreedingHandler) List(c *gin.Context) {
	var filter models.BreedingEventFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.CowID = c.Query("cow_id")
	if eventType := c.Query("event_type"); eventType != "" {
		t := models.BreedingEventType(eventType)
		if !t.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown event_type filter"))
			return
		}
		filter.EventType = &t
	}
	filter.Status = c.Query("status")
	filter.FromDate = parseTimeQuery(c, "from")
	filter.ToDate = parseTimeQuery(c, "to")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}

	events, total, err := h.breeding.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get breeding event detail
// @Tags Breeding
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /breeding-events/{id} [get]
func (h *BreedingHandler) Get(c *gin.Context) {
	event, err := h.breeding.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Create breeding event
// @Tags Breeding
// @Accept json
// @Produce json
// @Param payload body service.CreateBreedingEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /breeding-events [post]
func (h *BreedingHandler) Create(c *gin.Context) {
	var req service.CreateBreedingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.UserID = resolveUserID(c, req.UserID)
	event, err := h.breeding.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update breeding event
// @Tags Breeding
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateBreedingEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /breeding-events/{id} [put]
func (h *BreedingHandler) Update(c *gin.Context) {
	var req service.UpdateBreedingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.breeding.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete breeding event
// @Tags Breeding
// @Param id path string true "Event ID"
// @Success 204
// @Router /breeding-events/{id} [delete]
func (h *BreedingHandler) Delete(c *gin.Context) {
	if err := h.breeding.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
