package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"receivables-service/internal/ingest"
	"receivables-service/internal/services"
	"receivables-service/pkg/common"
)

type UploadHandler struct {
	Reconcile *services.ReconcileService
}

func NewUploadHandler(reconcile *services.ReconcileService) *UploadHandler {
	return &UploadHandler{Reconcile: reconcile}
}

func (h *UploadHandler) UploadBankPayments(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Missing upload file", nil, http.StatusBadRequest))
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unreadable upload file", nil, http.StatusBadRequest))
		return
	}
	defer src.Close()

	result, err := h.Reconcile.UploadBankPayments(src)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Bank payments processed"))
}

func (h *UploadHandler) UploadOrders(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Missing upload file", nil, http.StatusBadRequest))
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unreadable upload file", nil, http.StatusBadRequest))
		return
	}
	defer src.Close()

	result, err := h.Reconcile.UploadOrders(src)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Orders processed"))
}

type AddOrderRequest struct {
	ClientCode  string `json:"client_code" binding:"required"`
	OrderDate   string `json:"order_date" binding:"required"`
	OrderAmount string `json:"order_amount" binding:"required"`
}

func (h *UploadHandler) AddOrder(c *gin.Context) {
	var req AddOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	orderDate, ok := ingest.ParseDate(req.OrderDate)
	if !ok {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid order_date", nil, http.StatusBadRequest))
		return
	}
	amount, err := decimal.NewFromString(req.OrderAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid order_amount", nil, http.StatusBadRequest))
		return
	}

	if err := h.Reconcile.AddOrder(req.ClientCode, orderDate, amount); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Client not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Order recorded"))
}

// respondUploadError maps ingest structure errors to 400 and store failures
// to 500.
func respondUploadError(c *gin.Context, err error) {
	var missing *ingest.MissingColumnsError
	switch {
	case errors.Is(err, ingest.ErrHeaderNotFound),
		errors.Is(err, services.ErrNoValidOrders),
		errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
	}
}
