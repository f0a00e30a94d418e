package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"receivables-service/internal/services"
	"receivables-service/pkg/common"
)

type LegacyHandler struct {
	Loads *services.LegacyLoadService
}

func NewLegacyHandler(loads *services.LegacyLoadService) *LegacyHandler {
	return &LegacyHandler{Loads: loads}
}

// RunDailyLoad triggers the ERP order pull for today and reports the
// workbook it produced, if any.
func (h *LegacyHandler) RunDailyLoad(c *gin.Context) {
	path, err := h.Loads.RunDailyLoad(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	if path == "" {
		c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Nothing to process"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"file": filepath.Base(path)}, "Daily order load complete"))
}

// DownloadExtract serves a previously generated extraction workbook by base
// name. The name is stripped to its base to keep requests inside the output
// directory.
func (h *LegacyHandler) DownloadExtract(c *gin.Context) {
	name := filepath.Base(c.Param("file"))
	if name == "." || name == "/" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid file name", nil, http.StatusBadRequest))
		return
	}
	path := filepath.Join(h.Loads.OutputDir, name)
	c.FileAttachment(path, name)
}
