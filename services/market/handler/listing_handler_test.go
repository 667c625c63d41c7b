package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstall/internal/identity"
	listing "bookstall/internal/listingService"
	"bookstall/internal/marketerrors"
	model "bookstall/internal/models"
	"bookstall/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	clientID = uuid.NewString()
	adminID  = uuid.NewString()

	asClient = &identity.Identity{UserID: clientID, Role: model.RoleClient}
	asAdmin  = &identity.Identity{UserID: adminID, Role: model.RoleAdmin}
)

// newTestRouter returns a gin engine that authenticates every request as caller (nil: anonymous)
func newTestRouter(caller *identity.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if caller != nil {
		router.Use(func(c *gin.Context) {
			helpers.SetIdentity(c, *caller)
			c.Next()
		})
	}
	return router
}

// doRequest sends body (raw string or JSON-marshalled value) and decodes the envelope
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func sampleBook(status model.BookStatus) model.Book {
	return model.Book{
		BookID:      uuid.NewString(),
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Spice",
		Price:       12.5,
		Quantity:    3,
		Status:      status,
		SellerID:    clientID,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreateBookHandler(t *testing.T) {
	validReq := helpers.CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Spice",
		Price:       12.5,
		Quantity:    3,
	}
	wantInput := listing.CreateInput{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Spice",
		Price:       12.5,
		Quantity:    3,
	}

	tests := []struct {
		name           string
		caller         *identity.Identity
		requestBody    any
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "client_listing_is_pending",
			caller:      asClient,
			requestBody: validReq,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().
					Create(gomock.Any(), wantInput, clientID, model.RoleClient).
					Return(sampleBook(model.StatusPending), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "book listed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "pending", data["status"])
				require.Equal(t, "2024-01-02T03:04:05Z", data["created_at"])
				require.Equal(t, 12.5, data["price"])
			},
		},
		{
			name:        "admin_listing_is_available",
			caller:      asAdmin,
			requestBody: validReq,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().
					Create(gomock.Any(), wantInput, adminID, model.RoleAdmin).
					Return(sampleBook(model.StatusAvailable), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "book listed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "available", data["status"])
			},
		},
		{
			name:           "anonymous",
			caller:         nil,
			requestBody:    validReq,
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "please authenticate",
		},
		{
			name:           "invalid_json",
			caller:         asClient,
			requestBody:    `{invalid json}`,
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:   "missing_title",
			caller: asClient,
			requestBody: helpers.CreateBookRequest{
				Author: "a", Description: "d", Price: 1, Quantity: 1,
			},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:   "zero_price",
			caller: asClient,
			requestBody: helpers.CreateBookRequest{
				Title: "t", Author: "a", Description: "d", Price: 0, Quantity: 1,
			},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:   "negative_quantity",
			caller: asClient,
			requestBody: helpers.CreateBookRequest{
				Title: "t", Author: "a", Description: "d", Price: 1, Quantity: -1,
			},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "service_validation_error",
			caller:      asClient,
			requestBody: validReq,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().
					Create(gomock.Any(), wantInput, clientID, model.RoleClient).
					Return(model.Book{}, marketerrors.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid input",
		},
		{
			name:        "service_generic_error",
			caller:      asClient,
			requestBody: validReq,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().
					Create(gomock.Any(), wantInput, clientID, model.RoleClient).
					Return(model.Book{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := newTestRouter(tc.caller)
			router.POST("/api/books", NewListingHandler(mockService).CreateBookHandler)

			w, resp := doRequest(t, router, http.MethodPost, "/api/books", tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestListAvailableHandler(t *testing.T) {
	tests := []struct {
		name           string
		listings       []model.Listing
		serviceErr     error
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "with_books",
			listings: []model.Listing{
				{Book: sampleBook(model.StatusAvailable), Seller: model.Seller{UserID: clientID, Username: "alice"}},
				{Book: sampleBook(model.StatusAvailable), Seller: model.Seller{UserID: clientID, Username: "alice"}},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "empty_catalogue",
			listings:       []model.Listing{},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "service_error",
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockListingServiceInterface(ctrl)
			mockService.EXPECT().ListAvailable(gomock.Any()).Return(tc.listings, tc.serviceErr)

			router := newTestRouter(nil)
			router.GET("/api/books/available", NewListingHandler(mockService).ListAvailableHandler)

			w, resp := doRequest(t, router, http.MethodGet, "/api/books/available", nil)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusOK {
				data := resp["data"].([]any)
				require.Len(t, data, tc.expectedCount)
				for _, item := range data {
					seller := item.(map[string]any)["seller"].(map[string]any)
					require.Equal(t, "alice", seller["username"])
					require.NotContains(t, seller, "email")
				}
			}
		})
	}
}

func TestListPendingHandler(t *testing.T) {
	tests := []struct {
		name           string
		caller         *identity.Identity
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "admin",
			caller: asAdmin,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().ListPending(gomock.Any(), model.RoleAdmin).Return([]model.Listing{
					{Book: sampleBook(model.StatusPending), Seller: model.Seller{UserID: clientID, Username: "alice", Email: "alice@example.com"}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "pending books retrieved successfully",
		},
		{
			name:   "client_forbidden",
			caller: asClient,
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().ListPending(gomock.Any(), model.RoleClient).Return(nil, marketerrors.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "access denied",
		},
		{
			name:           "anonymous",
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "please authenticate",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := newTestRouter(tc.caller)
			router.GET("/api/books/pending", NewListingHandler(mockService).ListPendingHandler)

			w, resp := doRequest(t, router, http.MethodGet, "/api/books/pending", nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)

			if w.Code == http.StatusOK {
				first := resp["data"].([]any)[0].(map[string]any)
				require.Equal(t, "alice@example.com", first["seller"].(map[string]any)["email"])
			}
		})
	}
}

func TestReviewBookHandler(t *testing.T) {
	bookID := uuid.NewString()

	tests := []struct {
		name           string
		caller         *identity.Identity
		requestBody    any
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "approve",
			caller:      asAdmin,
			requestBody: helpers.ReviewRequest{Action: model.ActionApprove},
			mockSetup: func(m *MockListingServiceInterface) {
				b := sampleBook(model.StatusAvailable)
				b.BookID = bookID
				m.EXPECT().Review(gomock.Any(), bookID, model.ActionApprove, model.RoleAdmin).Return(b, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "book reviewed successfully",
		},
		{
			name:        "reject",
			caller:      asAdmin,
			requestBody: helpers.ReviewRequest{Action: model.ActionReject},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().Review(gomock.Any(), bookID, model.ActionReject, model.RoleAdmin).Return(sampleBook(model.StatusRejected), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "book reviewed successfully",
		},
		{
			name:           "unknown_action",
			caller:         asAdmin,
			requestBody:    map[string]string{"action": "publish"},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "already_reviewed",
			caller:      asAdmin,
			requestBody: helpers.ReviewRequest{Action: model.ActionApprove},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().Review(gomock.Any(), bookID, model.ActionApprove, model.RoleAdmin).Return(model.Book{}, marketerrors.ErrInvalidState)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "operation not allowed in current status",
		},
		{
			name:        "not_found",
			caller:      asAdmin,
			requestBody: helpers.ReviewRequest{Action: model.ActionApprove},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().Review(gomock.Any(), bookID, model.ActionApprove, model.RoleAdmin).Return(model.Book{}, marketerrors.ErrBookNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "book not found",
		},
		{
			name:        "client_forbidden",
			caller:      asClient,
			requestBody: helpers.ReviewRequest{Action: model.ActionApprove},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().Review(gomock.Any(), bookID, model.ActionApprove, model.RoleClient).Return(model.Book{}, marketerrors.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "access denied",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := newTestRouter(tc.caller)
			router.PATCH("/api/books/:id/review", NewListingHandler(mockService).ReviewBookHandler)

			w, resp := doRequest(t, router, http.MethodPatch, "/api/books/"+bookID+"/review", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

func TestStatisticsHandlers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockService := NewMockListingServiceInterface(ctrl)
	mockService.EXPECT().Statistics(gomock.Any(), model.RoleAdmin).Return(model.Statistics{
		TotalBooks: 4, AvailableBooks: 1, SoldBooks: 1, PendingBooks: 1, OutOfStock: 0,
		TotalQuantity: 5, TotalSoldQuantity: 3,
	}, nil)
	mockService.EXPECT().SellerStatistics(gomock.Any(), adminID).Return(model.SellerStatistics{
		TotalBooks: 2, PendingBooks: 1, ApprovedBooks: 1, TotalPurchases: 3,
	}, nil)
	mockService.EXPECT().ListBySeller(gomock.Any(), adminID).Return([]model.Book{sampleBook(model.StatusPending)}, nil)

	h := NewListingHandler(mockService)
	router := newTestRouter(asAdmin)
	router.GET("/api/books/statistics", h.StatisticsHandler)
	router.GET("/api/books/client-stats", h.ClientStatsHandler)
	router.GET("/api/books/my-books", h.MyBooksHandler)

	w, resp := doRequest(t, router, http.MethodGet, "/api/books/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp["data"].(map[string]any)
	require.Equal(t, 4.0, stats["total_books"])
	require.Equal(t, 3.0, stats["total_sold_quantity"])

	w, resp = doRequest(t, router, http.MethodGet, "/api/books/client-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3.0, resp["data"].(map[string]any)["total_purchases"])

	w, resp = doRequest(t, router, http.MethodGet, "/api/books/my-books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)
}

func TestStatisticsHandler_ClientForbidden(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockService := NewMockListingServiceInterface(ctrl)
	mockService.EXPECT().
		Statistics(gomock.Any(), model.RoleClient).
		DoAndReturn(func(_ context.Context, _ model.Role) (model.Statistics, error) {
			return model.Statistics{}, marketerrors.ErrForbidden
		})

	router := newTestRouter(asClient)
	router.GET("/api/books/statistics", NewListingHandler(mockService).StatisticsHandler)

	w, resp := doRequest(t, router, http.MethodGet, "/api/books/statistics", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "access denied", resp["message"])
	require.NotContains(t, resp, "data")
}
