package staff

import (
	"fmt"
	"net/http"

	"github.com/sdrescue/trashtrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMonthlyReport returns the month-over-month program report.
func (h *Handler) GetMonthlyReport(c *gin.Context) {
	report, err := h.ReportService.GetMonthlyReport()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to build monthly report", err)
		return
	}

	response.Success(c, report)
}

// ExportMonthlyReport streams the monthly report as a CSV download.
func (h *Handler) ExportMonthlyReport(c *gin.Context) {
	data, filename, err := h.ReportService.ExportMonthlyReportCSV()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to export monthly report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
