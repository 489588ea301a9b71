package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	posapp "github.com/shopdesk/backend/internal/application/pos"
)

// ReportHandler handles sales reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *posapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *posapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesReportQuery holds the report range and output format
type SalesReportQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Format string `form:"format" binding:"omitempty,oneof=json csv"`
}

// GetSalesReport godoc
// @Summary      Sales report
// @Description  Revenue for today, this week and this month, daily revenue, top
// @Description  services and payment breakdown for the range. format=csv downloads
// @Description  every invoice in the range instead.
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Param        from query string false "First day (YYYY-MM-DD), default 30 days ago"
// @Param        to query string false "Last day (YYYY-MM-DD), default today"
// @Param        format query string false "Output format" Enums(json, csv) default(json)
// @Success      200 {object} dto.Response{data=posapp.SalesReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pos/reports [get]
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	var query SalesReportQuery
	if !h.BindQuery(c, &query) {
		return
	}
	rangeQuery := posapp.SalesReportQuery{From: query.From, To: query.To}

	if query.Format == "csv" {
		export, err := h.reportService.ExportSalesCSV(c.Request.Context(), rangeQuery)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Content)
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), rangeQuery)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
