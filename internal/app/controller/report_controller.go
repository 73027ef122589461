package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// DownloadRatingsReport streams the ratings workbook as an XLSX download.
func (ctrl *ReportController) DownloadRatingsReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.reportService.RatingsReport()
	if err != nil {
		log.Error("Failed to build ratings report", err, nil)
		apperrors.InternalError(c, "failed to build report")
		return
	}

	filename := fmt.Sprintf("ratings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
