package helpers

import (
	"time"

	model "bookstall/internal/models"
)

// Request DTOs
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AdminSecret string `json:"admin_secret"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
}

type ReviewRequest struct {
	Action model.ReviewAction `json:"action" binding:"required,oneof=approve reject"`
}

type BuyRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// Response DTOs
type BookResponse struct {
	BookID       string  `json:"book_id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	SoldQuantity int     `json:"sold_quantity"`
	Status       string  `json:"status"`
	SellerID     string  `json:"seller_id"`
	CreatedAt    string  `json:"created_at"`
}

type ListingResponse struct {
	BookResponse
	Seller model.Seller `json:"seller"`
}

type PurchaseResponse struct {
	PurchaseID   string  `json:"purchase_id"`
	BuyerID      string  `json:"buyer_id"`
	BookID       string  `json:"book_id"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	PurchaseDate string  `json:"purchase_date"`
}

type PurchaseRecordResponse struct {
	PurchaseResponse
	Book BookResponse `json:"book"`
}

type BuyResponse struct {
	Book     BookResponse     `json:"book"`
	Purchase PurchaseResponse `json:"purchase"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NewBookResponse(b model.Book) BookResponse {
	return BookResponse{
		BookID:       b.BookID,
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		Price:        b.Price,
		Quantity:     b.Quantity,
		SoldQuantity: b.SoldQuantity,
		Status:       string(b.Status),
		SellerID:     b.SellerID,
		CreatedAt:    formatTime(b.CreatedAt),
	}
}

func NewBookResponses(books []model.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}

func NewListingResponses(listings []model.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ListingResponse{BookResponse: NewBookResponse(l.Book), Seller: l.Seller})
	}
	return out
}

func NewPurchaseResponse(p model.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		BuyerID:      p.BuyerID,
		BookID:       p.BookID,
		Quantity:     p.Quantity,
		TotalPrice:   p.TotalPrice,
		PurchaseDate: formatTime(p.PurchaseDate),
	}
}

func NewPurchaseRecordResponses(records []model.PurchaseRecord) []PurchaseRecordResponse {
	out := make([]PurchaseRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, PurchaseRecordResponse{
			PurchaseResponse: NewPurchaseResponse(r.Purchase),
			Book:             NewBookResponse(r.Book),
		})
	}
	return out
}
