package handler

import (
	"fmt"
	"net/http"

	"bookstall/internal/identity"
	listing "bookstall/internal/listingService"
	"bookstall/internal/marketerrors"
	"bookstall/services/market/helpers"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateBookHandler handles POST /api/books
func (h *ListingHandler) CreateBookHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "CreateBookHandler")
	if !ok {
		return
	}

	var req helpers.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateBookHandler", err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), listing.CreateInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}, caller.UserID, caller.Role)
	if err != nil {
		helpers.HandleServiceError(c, "CreateBookHandler", err, map[string]any{"seller_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBookResponse(book), "book listed successfully")
	helpers.LogSuccess("CreateBookHandler", "book listed successfully", map[string]any{
		"book_id":   book.BookID,
		"seller_id": caller.UserID,
		"status":    book.Status,
	})
}

// ListAvailableHandler handles GET /api/books/available
func (h *ListingHandler) ListAvailableHandler(c *gin.Context) {
	listings, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ListAvailableHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(listings), "available books retrieved successfully")
	helpers.LogSuccess("ListAvailableHandler", "available books retrieved successfully", map[string]any{
		"count": len(listings),
	})
}

// ListPendingHandler handles GET /api/books/pending
func (h *ListingHandler) ListPendingHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "ListPendingHandler")
	if !ok {
		return
	}

	listings, err := h.service.ListPending(c.Request.Context(), caller.Role)
	if err != nil {
		helpers.HandleServiceError(c, "ListPendingHandler", err, map[string]any{"user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(listings), "pending books retrieved successfully")
	helpers.LogSuccess("ListPendingHandler", "pending books retrieved successfully", map[string]any{
		"count": len(listings),
	})
}

// ReviewBookHandler handles PATCH /api/books/:id/review
func (h *ListingHandler) ReviewBookHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "ReviewBookHandler")
	if !ok {
		return
	}

	var req helpers.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ReviewBookHandler", err)
		return
	}

	bookID := c.Param("id")
	book, err := h.service.Review(c.Request.Context(), bookID, req.Action, caller.Role)
	if err != nil {
		helpers.HandleServiceError(c, "ReviewBookHandler", err, map[string]any{
			"book_id": bookID,
			"action":  req.Action,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBookResponse(book), "book reviewed successfully")
	helpers.LogSuccess("ReviewBookHandler", "book reviewed successfully", map[string]any{
		"book_id":     book.BookID,
		"status":      book.Status,
		"reviewed_by": caller.UserID,
	})
}

// StatisticsHandler handles GET /api/books/statistics
func (h *ListingHandler) StatisticsHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "StatisticsHandler")
	if !ok {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), caller.Role)
	if err != nil {
		helpers.HandleServiceError(c, "StatisticsHandler", err, map[string]any{"user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "statistics retrieved successfully")
	helpers.LogSuccess("StatisticsHandler", "statistics retrieved successfully", nil)
}

// MyBooksHandler handles GET /api/books/my-books
func (h *ListingHandler) MyBooksHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "MyBooksHandler")
	if !ok {
		return
	}

	books, err := h.service.ListBySeller(c.Request.Context(), caller.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "MyBooksHandler", err, map[string]any{"seller_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBookResponses(books), "books retrieved successfully")
	helpers.LogSuccess("MyBooksHandler", "books retrieved successfully", map[string]any{
		"seller_id": caller.UserID,
		"count":     len(books),
	})
}

// ClientStatsHandler handles GET /api/books/client-stats
func (h *ListingHandler) ClientStatsHandler(c *gin.Context) {
	caller, ok := requireIdentity(c, "ClientStatsHandler")
	if !ok {
		return
	}

	stats, err := h.service.SellerStatistics(c.Request.Context(), caller.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "ClientStatsHandler", err, map[string]any{"user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "statistics retrieved successfully")
	helpers.LogSuccess("ClientStatsHandler", "statistics retrieved successfully", map[string]any{
		"user_id": caller.UserID,
	})
}

// requireIdentity writes a 401 when the auth middleware did not run
func requireIdentity(c *gin.Context, handlerName string) (identity.Identity, bool) {
	caller, ok := helpers.CurrentIdentity(c)
	if !ok {
		err := fmt.Errorf("%w - no identity on request", marketerrors.ErrUnauthorized)
		helpers.HandleServiceError(c, handlerName, err, nil)
		return identity.Identity{}, false
	}
	return caller, true
}
