package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// CowHandler exposes herd registry endpoints.
type CowHandler struct {
	cows *service.CowService
}

// NewCowHandler constructs CowHandler.
func NewCowHandler(cows *service.CowService) *CowHandler {
	return &CowHandler{cows: cows}
}

// List godoc
// @Summary List cows
// @Tags Cows
// @Produce json
// @Param user_id query string false "Owner filter"
// @Param status query string false "Status filter"
// @Param search query string false "Search by name or tag"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /cows [get]
func (h *CowHandler) List(c *gin.Context) {
	var filter models.CowFilter
	filter.UserID = resolveUserID(c, c.Query("user_id"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := c.Query("status"); status != "" {
		s := models.CowStatus(status)
		if !s.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown status filter"))
			return
		}
		filter.Status = &s
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	cows, total, err := h.cows.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cows, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get cow detail
// @Tags Cows
// @Produce json
// @Param id path string true "Cow ID"
// @Success 200 {object} response.Envelope
// @Router /cows/{id} [get]
func (h *CowHandler) Get(c *gin.Context) {
	cow, err := h.cows.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cow, nil)
}

// Create godoc
// @Summary Register cow
// @Tags Cows
// @Accept json
// @Produce json
// @Param payload body service.CreateCowRequest true "Cow payload"
// @Success 201 {object} response.Envelope
// @Router /cows [post]
func (h *CowHandler) Create(c *gin.Context) {
	var req service.CreateCowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.UserID = resolveUserID(c, req.UserID)
	cow, err := h.cows.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cow)
}

// Update godoc
// @Summary Update cow
// @Tags Cows
// @Accept json
// @Produce json
// @Param id path string true "Cow ID"
// @Param payload body service.UpdateCowRequest true "Cow payload"
// @Success 200 {object} response.Envelope
// @Router /cows/{id} [put]
func (h *CowHandler) Update(c *gin.Context) {
	var req service.UpdateCowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cow, err := h.cows.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cow, nil)
}

// Delete godoc
// @Summary Delete cow
// @Tags Cows
// @Param id path string true "Cow ID"
// @Success 204
// @Router /cows/{id} [delete]
func (h *CowHandler) Delete(c *gin.Context) {
	if err := h.cows.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
