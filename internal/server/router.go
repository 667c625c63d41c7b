package server

import (
	"context"
	"errors"
	"net/http"

	"bookstall/internal/identity"
	model "bookstall/internal/models"
	handler "bookstall/services/market/handler"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Listings  handler.ListingServiceInterface
	Purchases handler.PurchaseServiceInterface
	Accounts  handler.AccountServiceInterface
	Tokens    identity.Resolver
	// Ping reports store health; nil means always healthy
	Ping func(ctx context.Context) error
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", healthHandler(deps.Ping))

	authHandler := handler.NewAuthHandler(deps.Accounts)
	listingHandler := handler.NewListingHandler(deps.Listings)
	purchaseHandler := handler.NewPurchaseHandler(deps.Purchases)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/client/register", authHandler.RegisterHandler(model.RoleClient))
		auth.POST("/client/login", authHandler.LoginHandler(model.RoleClient))
		auth.POST("/admin/register", authHandler.RegisterHandler(model.RoleAdmin))
		auth.POST("/admin/login", authHandler.LoginHandler(model.RoleAdmin))
	}

	books := api.Group("/books")
	{
		books.GET("/available", listingHandler.ListAvailableHandler)
	}

	authed := books.Group("", AuthMiddleware(deps.Tokens))
	{
		authed.POST("", listingHandler.CreateBookHandler)
		authed.GET("/my-books", listingHandler.MyBooksHandler)
		authed.GET("/client-stats", listingHandler.ClientStatsHandler)
		authed.GET("/purchases", purchaseHandler.PurchasesHandler)
		authed.PATCH("/:id/buy", purchaseHandler.BuyBookHandler)
	}

	admin := authed.Group("", RequireRole(model.RoleAdmin))
	{
		admin.GET("/pending", listingHandler.ListPendingHandler)
		admin.GET("/statistics", listingHandler.StatisticsHandler)
		admin.PATCH("/:id/review", listingHandler.ReviewBookHandler)
	}

	return router
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				utils.JSONError(c, http.StatusServiceUnavailable, errors.Join(errors.New("store unreachable"), err), "service unavailable")
				utils.Warn("healthHandler: store ping failed", map[string]any{"error": err.Error()})
				return
			}
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{"healthy": true}, "ok")
	}
}
