package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymflow/gymflow/internal/api/dto"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/service"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// @Summary Get the sales breakdown
// @Description Break pre-tax sales into personal-training, other-service and product buckets over a time window
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request query dto.SalesReportRequest false "Report window"
// @Success 200 {object} dto.SalesReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /reports/sales [get]
func (h *ReportHandler) GetSalesBreakdown(c *gin.Context) {
	var req dto.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the report parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetSalesBreakdown(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
