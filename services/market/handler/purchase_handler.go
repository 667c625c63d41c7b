package handler

import (
	"net/http"

	"bookstall/services/market/helpers"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	service PurchaseServiceInterface
}

func NewPurchaseHandler(service PurchaseServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// BuyBookHandler handles PATCH /api/books/:id/buy
func (h *PurchaseHandler) BuyBookHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "BuyBookHandler")
	if !ok {
		return
	}

	var req helpers.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "BuyBookHandler", err)
		return
	}

	bookID := c.Param("id")
	result, err := h.service.Buy(c.Request.Context(), bookID, caller.UserID, req.Quantity)
	if err != nil {
		helpers.HandleServiceError(c, "BuyBookHandler", err, map[string]any{
			"book_id":  bookID,
			"buyer_id": caller.UserID,
			"quantity": req.Quantity,
		})
		return
	}

	resp := helpers.BuyResponse{
		Book:     helpers.NewBookResponse(result.Book),
		Purchase: helpers.NewPurchaseResponse(result.Purchase),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "purchase completed successfully")
	helpers.LogSuccess("BuyBookHandler", "purchase completed successfully", map[string]any{
		"purchase_id": result.Purchase.PurchaseID,
		"book_id":     bookID,
		"buyer_id":    caller.UserID,
		"quantity":    result.Purchase.Quantity,
		"total_price": result.Purchase.TotalPrice,
	})
}

// PurchasesHandler handles GET /api/books/purchases
func (h *PurchaseHandler) PurchasesHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "PurchasesHandler")
	if !ok {
		return
	}

	records, err := h.service.ListPurchasesByBuyer(c.Request.Context(), caller.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "PurchasesHandler", err, map[string]any{"buyer_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewPurchaseRecordResponses(records), "purchases retrieved successfully")
	helpers.LogSuccess("PurchasesHandler", "purchases retrieved successfully", map[string]any{
		"buyer_id": caller.UserID,
		"count":    len(records),
	})
}
