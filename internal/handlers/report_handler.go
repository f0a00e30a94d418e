package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"receivables-service/internal/services"
	"receivables-service/pkg/common"
)

type ReportHandler struct {
	Reporting *services.ReportingService
}

func NewReportHandler(reporting *services.ReportingService) *ReportHandler {
	return &ReportHandler{Reporting: reporting}
}

func (h *ReportHandler) Receivables(c *gin.Context) {
	report, err := h.Reporting.ReceivablesSummary(c.Query("outlet"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(report, "Receivables summary"))
}

func (h *ReportHandler) DailyGrid(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid year", nil, http.StatusBadRequest))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid month", nil, http.StatusBadRequest))
		return
	}

	report, err := h.Reporting.DailyGrid(year, month, c.Query("outlet"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid report period", nil, http.StatusBadRequest))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(report, "Daily receivables grid"))
}
