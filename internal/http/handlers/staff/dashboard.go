package staff

import (
	"github.com/sdrescue/trashtrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the live program overview: counts for the
// current week plus the recent activity feed.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.ReportService.GetDashboardStats()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load dashboard stats", err)
		return
	}

	response.Success(c, stats)
}
