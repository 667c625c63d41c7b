package integrationtests

import (
	"bookstall/internal/clock"
	"bookstall/internal/identity"
	listing "bookstall/internal/listingService"
	purchase "bookstall/internal/purchaseService"
	"bookstall/internal/repository"
	"bookstall/internal/server"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testAdminSecret = "integration-admin-secret"

var emailSeq atomic.Int64

// SetupTestRouter initializes the router with in-memory repository for integration testing.
func SetupTestRouter() (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	clk := clock.NewSystem()
	tokens := identity.NewJWTManager("integration-secret", time.Hour)

	router := server.SetupRouter(server.Dependencies{
		Listings:  listing.NewListingService(repo, clk),
		Purchases: purchase.NewPurchaseService(repo, clk),
		Accounts:  identity.NewAccountService(repo, tokens, clk, testAdminSecret),
		Tokens:    tokens,
		Ping:      repo.Ping,
	})
	return router, repo
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// Data returns the envelope payload as an object
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no object payload: %v", resp)
	return data
}

// DataList returns the envelope payload as a list
func DataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	data, ok := resp["data"].([]any)
	require.True(t, ok, "response has no list payload: %v", resp)
	return data
}

// RegisterClient creates a client account and returns its token
func RegisterClient(t *testing.T, router *gin.Engine) string {
	t.Helper()
	return register(t, router, "client", "")
}

// RegisterAdmin creates an admin account and returns its token
func RegisterAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	return register(t, router, "admin", testAdminSecret)
}

func register(t *testing.T, router *gin.Engine, role, adminSecret string) string {
	t.Helper()
	n := emailSeq.Add(1)
	body := map[string]string{
		"username":     fmt.Sprintf("%s%d", role, n),
		"email":        fmt.Sprintf("%s%d@example.com", role, n),
		"password":     "secret1",
		"admin_secret": adminSecret,
	}
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/api/auth/"+role+"/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %v", role, resp)
	return Data(t, resp)["token"].(string)
}

// CreateBook lists a book as the caller and returns its id
func CreateBook(t *testing.T, router *gin.Engine, token string, price float64, quantity int) string {
	t.Helper()
	body := map[string]any{
		"title":       "A",
		"author":      "B",
		"description": "C",
		"price":       price,
		"quantity":    quantity,
	}
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/api/books", token, body)
	require.Equal(t, http.StatusCreated, w.Code, "create book: %v", resp)
	return Data(t, resp)["book_id"].(string)
}
