package handler

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=handler

import (
	"context"

	"bookstall/internal/identity"
	listing "bookstall/internal/listingService"
	model "bookstall/internal/models"
	purchase "bookstall/internal/purchaseService"
)

type ListingServiceInterface interface {
	Create(ctx context.Context, input listing.CreateInput, sellerID string, sellerRole model.Role) (model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Book, error)
	ListPending(ctx context.Context, requesterRole model.Role) ([]model.Listing, error)
	Review(ctx context.Context, bookID string, action model.ReviewAction, reviewerRole model.Role) (model.Book, error)
	SellerStatistics(ctx context.Context, sellerID string) (model.SellerStatistics, error)
	Statistics(ctx context.Context, requesterRole model.Role) (model.Statistics, error)
}

type PurchaseServiceInterface interface {
	Buy(ctx context.Context, bookID, buyerID string, quantity int) (purchase.BuyResult, error)
	ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.PurchaseRecord, error)
}

type AccountServiceInterface interface {
	Login(ctx context.Context, email, password string, role model.Role) (identity.AuthResult, error)
	Register(ctx context.Context, input identity.RegisterInput) (identity.AuthResult, error)
}
