package models

import "time"

// Role is the role an authenticated identity acts with
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// BookStatus is the lifecycle state of a listing
type BookStatus string

const (
	StatusPending   BookStatus = "pending"
	StatusApproved  BookStatus = "approved" // stored enum value, never assigned
	StatusRejected  BookStatus = "rejected"
	StatusAvailable BookStatus = "available"
	StatusSold      BookStatus = "sold"
)

// ReviewAction is an admin decision on a pending listing
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// User represents a registered marketplace account
type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Seller is the public projection of the user owning a listing
type Seller struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Book represents a listing offered for sale
type Book struct {
	BookID       string     `json:"book_id"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Quantity     int        `json:"quantity"`
	SoldQuantity int        `json:"sold_quantity"`
	Status       BookStatus `json:"status"`
	SellerID     string     `json:"seller_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Sell takes qty copies out of stock. Callers check status and stock first.
func (b *Book) Sell(qty int) {
	b.Quantity -= qty
	b.SoldQuantity += qty
	if b.Quantity == 0 {
		b.Status = StatusSold
	}
}

// Listing is a book joined with its seller
type Listing struct {
	Book
	Seller Seller `json:"seller"`
}

// Purchase is an immutable record of a completed buy
type Purchase struct {
	PurchaseID   string    `json:"purchase_id"`
	BuyerID      string    `json:"buyer_id"`
	BookID       string    `json:"book_id"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// PurchaseRecord is a purchase joined with the book it bought
type PurchaseRecord struct {
	Purchase
	Book Book `json:"book"`
}

// StockFilter narrows book queries by remaining quantity
type StockFilter int

const (
	StockAny StockFilter = iota
	StockInStock
	StockOutOfStock
)

// BookFilter selects books for listing, counting and summing.
// Zero values match everything.
type BookFilter struct {
	Status   BookStatus
	SellerID string
	Stock    StockFilter
}

// Matches reports whether b satisfies the filter
func (f BookFilter) Matches(b Book) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.SellerID != "" && b.SellerID != f.SellerID {
		return false
	}
	switch f.Stock {
	case StockInStock:
		return b.Quantity > 0
	case StockOutOfStock:
		return b.Quantity == 0
	}
	return true
}

// Statistics aggregates the whole catalogue
type Statistics struct {
	TotalBooks        int `json:"total_books"`
	AvailableBooks    int `json:"available_books"`
	SoldBooks         int `json:"sold_books"`
	PendingBooks      int `json:"pending_books"`
	OutOfStock        int `json:"out_of_stock"`
	TotalQuantity     int `json:"total_quantity"`
	TotalSoldQuantity int `json:"total_sold_quantity"`
}

// SellerStatistics aggregates one user's listings and purchases
type SellerStatistics struct {
	TotalBooks     int `json:"total_books"`
	PendingBooks   int `json:"pending_books"`
	ApprovedBooks  int `json:"approved_books"`
	RejectedBooks  int `json:"rejected_books"`
	TotalPurchases int `json:"total_purchases"`
}
