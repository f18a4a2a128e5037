package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// SensorHandler exposes the sensor gateway and its read endpoints.
type SensorHandler struct {
	ingest *service.IngestService
}

// NewSensorHandler constructs SensorHandler.
func NewSensorHandler(ingest *service.IngestService) *SensorHandler {
	return &SensorHandler{ingest: ingest}
}

// Ingest godoc
// @Summary Ingest a sensor event
// @Tags Sensors
// @Accept json
// @Produce json
// @Param payload body service.SensorEventRequest true "Sensor event"
// @Success 201 {object} response.Envelope
// @Router /sensor-events [post]
func (h *SensorHandler) Ingest(c *gin.Context) {
	var req service.SensorEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.ingest.Ingest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// ListMilk godoc
// @Summary List milk production records
// @Tags Sensors
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param cow_id query string false "Cow filter"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /milk-production [get]
func (h *SensorHandler) ListMilk(c *gin.Context) {
	var filter models.MilkProductionFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.CowID = c.Query("cow_id")
	filter.DateFrom = parseTimeQuery(c, "from")
	filter.DateTo = parseTimeQuery(c, "to")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	records, total, err := h.ingest.ListMilk(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// ListAttendance godoc
// @Summary List attendance records
// @Tags Sensors
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param staff_id query string false "Staff filter"
// @Param open query bool false "Open shifts only"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *SensorHandler) ListAttendance(c *gin.Context) {
	var filter models.AttendanceFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.StaffID = c.Query("staff_id")
	filter.OpenOnly = c.Query("open") == "true"
	filter.DateFrom = parseTimeQuery(c, "from")
	filter.DateTo = parseTimeQuery(c, "to")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	records, total, err := h.ingest.ListAttendance(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

func parseTimeQuery(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
