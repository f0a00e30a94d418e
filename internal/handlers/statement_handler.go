package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"receivables-service/internal/services"
	"receivables-service/pkg/common"
)

type StatementHandler struct {
	Exports *services.ExportService
}

func NewStatementHandler(exports *services.ExportService) *StatementHandler {
	return &StatementHandler{Exports: exports}
}

type ExportRequest struct {
	FromDate   string `json:"from_date" binding:"required"`
	ToDate     string `json:"to_date" binding:"required"`
	ClientCode string `json:"client_code"`
}

func (h *StatementHandler) SubmitExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	taskID, err := h.Exports.Submit(req.FromDate, req.ToDate, req.ClientCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusAccepted, common.NewSuccessResponse(gin.H{"task_id": taskID}, "Statement export submitted"))
}

func (h *StatementHandler) ExportStatus(c *gin.Context) {
	job, err := h.Exports.GetStatus(c.Param("task_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Task not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(job, "Export status"))
}

func (h *StatementHandler) DownloadExport(c *gin.Context) {
	zipPath, err := h.Exports.CollectArchive(c.Param("task_id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Task not found", nil, http.StatusNotFound))
		case errors.Is(err, services.ErrJobNotReady):
			c.JSON(http.StatusConflict, common.NewErrorResponse("Export is not complete", nil, http.StatusConflict))
		case errors.Is(err, services.ErrNoArchiveFiles):
			c.JSON(http.StatusNotFound, common.NewErrorResponse("No files available for download", nil, http.StatusNotFound))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		}
		return
	}
	c.FileAttachment(zipPath, filepath.Base(zipPath))
}
