// File: /controllers/report_controller.go
package controllers

import (
	"net/http"

	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// GetReports returns attendance and rating figures per event, staff only
func (rc *ReportController) GetReports(c *gin.Context) {
	rows, err := rc.reportService.BuildReport(c.Request.Context(), currentActor(c).IsStaff)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
