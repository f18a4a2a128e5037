package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// DashboardHandler exposes the farm overview and analytics endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Farm overview
// @Tags Dashboard
// @Produce json
// @Param user_id query string false "Owner"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := resolveUserID(c, c.Query("user_id"))
	summary, err := h.dashboard.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// MilkTrend godoc
// @Summary Milk production trend
// @Tags Dashboard
// @Produce json
// @Param user_id query string false "Owner"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Success 200 {object} response.Envelope
// @Router /analytics/milk-trend [get]
func (h *DashboardHandler) MilkTrend(c *gin.Context) {
	userID := resolveUserID(c, c.Query("user_id"))
	trend, err := h.dashboard.MilkTrend(c.Request.Context(), userID, timeOrZero(c, "from"), timeOrZero(c, "to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trend, nil)
}

// StaffSummaries godoc
// @Summary Attendance summary per staff
// @Tags Dashboard
// @Produce json
// @Param user_id query string false "Owner"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Success 200 {object} response.Envelope
// @Router /analytics/staff-attendance [get]
func (h *DashboardHandler) StaffSummaries(c *gin.Context) {
	userID := resolveUserID(c, c.Query("user_id"))
	summaries, err := h.dashboard.StaffSummaries(c.Request.Context(), userID, timeOrZero(c, "from"), timeOrZero(c, "to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// SystemMetrics godoc
// @Summary Process-level counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *DashboardHandler) SystemMetrics(c *gin.Context) {
	if h.dashboard == nil {
		response.Error(c, appErrors.ErrFeatureGated)
		return
	}
	response.JSON(c, http.StatusOK, h.dashboard.SystemMetrics(), nil)
}

func timeOrZero(c *gin.Context, key string) time.Time {
	if t := parseTimeQuery(c, key); t != nil {
		return *t
	}
	return time.Time{}
}
