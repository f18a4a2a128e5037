package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// AlertHandler exposes heat alert endpoints.
type AlertHandler struct {
	alerts *service.AlertService
}

// NewAlertHandler constructs AlertHandler.
func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List godoc
// @Summary List heat alerts
// @Tags Alerts
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param cow_id query string false "Cow filter"
// @Param unread query bool false "Unread only"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	var filter models.HeatAlertFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.CowID = c.Query("cow_id")
	filter.UnreadOnly = c.Query("unread") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	alerts, total, err := h.alerts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alerts, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// MarkRead godoc
// @Summary Mark alert as read
// @Tags Alerts
// @Param id path string true "Alert ID"
// @Success 204
// @Router /alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *gin.Context) {
	if err := h.alerts.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Dismiss godoc
// @Summary Dismiss alert
// @Tags Alerts
// @Param id path string true "Alert ID"
// @Success 204
// @Router /alerts/{id}/dismiss [patch]
func (h *AlertHandler) Dismiss(c *gin.Context) {
	if err := h.alerts.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
