package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// HeatHandler exposes heat detection endpoints.
type HeatHandler struct {
	heat *service.HeatService
}

// NewHeatHandler constructs HeatHandler.
func NewHeatHandler(heat *service.HeatService) *HeatHandler {
	return &HeatHandler{heat: heat}
}

// Detect godoc
// @Summary Record a heat detection
// @Tags Heat
// @Accept json
// @Produce json
// @Param payload body service.DetectHeatRequest true "Detection payload"
// @Success 201 {object} response.Envelope
// @Router /heat-detections [post]
func (h *HeatHandler) Detect(c *gin.Context) {
	var req service.DetectHeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.UserID = resolveUserID(c, req.UserID)
	result, err := h.heat.Detect(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// History godoc
// @Summary List heat records for a cow
// @Tags Heat
// @Produce json
// @Param cow_id query string true "Cow ID"
// @Param limit query int false "Max records"
// @Success 200 {object} response.Envelope
// @Router /heat-detections [get]
func (h *HeatHandler) History(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		limit = v
	}
	records, err := h.heat.History(c.Request.Context(), c.Query("cow_id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// MarkInseminated godoc
// @Summary Flag a heat record as inseminated
// @Tags Heat
// @Param id path string true "Heat record ID"
// @Success 204
// @Router /heat-detections/{id}/inseminated [patch]
func (h *HeatHandler) MarkInseminated(c *gin.Context) {
	if err := h.heat.MarkInseminated(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
