package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmtrack/farmtrack-api/internal/service"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/export"
	"github.com/farmtrack/farmtrack-api/pkg/response"
)

// ReportHandler renders analytics datasets as downloadable files.
type ReportHandler struct {
	dashboard *service.DashboardService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(dashboard *service.DashboardService) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// MilkProduction godoc
// @Summary Export milk production trend
// @Tags Reports
// @Produce octet-stream
// @Param user_id query string false "Owner"
// @Param from query string false "From date (RFC3339)"
// @Param to query string false "To date (RFC3339)"
// @Param format query string false "csv or pdf"
// @Success 200
// @Router /reports/milk-production [get]
func (h *ReportHandler) MilkProduction(c *gin.Context) {
	userID := resolveUserID(c, c.Query("user_id"))
	trend, err := h.dashboard.MilkTrend(c.Request.Context(), userID, timeOrZero(c, "from"), timeOrZero(c, "to"))
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Liters"},
		Rows:    make([]map[string]string, 0, len(trend.Days)),
	}
	for _, day := range trend.Days {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":   day.Day.Format("2006-01-02"),
			"Liters": fmt.Sprintf("%.2f", day.TotalLiters),
		})
	}

	filename := fmt.Sprintf("milk-production_%s_%s", trend.From.Format("20060102"), trend.To.Format("20060102"))
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Milk Production")
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
