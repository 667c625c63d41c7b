package listing

import (
	"bookstall/internal/clock"
	"bookstall/internal/marketerrors"
	"bookstall/internal/models"
	"bookstall/internal/repository"
	"bookstall/utils"
	"context"
	"fmt"
	"strings"
)

// CreateInput carries the seller-supplied fields of a new listing
type CreateInput struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Quantity    int
}

// ListingService owns book listings, their review lifecycle and statistics
type ListingService struct {
	repo  repository.MarketDB
	clock clock.Clock
}

// NewListingService creates a new ListingService instance
func NewListingService(repo repository.MarketDB, clk clock.Clock) *ListingService {
	return &ListingService{
		repo:  repo,
		clock: clk,
	}
}

// Create validates and stores a new listing. Admin listings skip review.
func (s *ListingService) Create(ctx context.Context, in CreateInput, sellerID string, sellerRole models.Role) (models.Book, error) {
	if err := validateCreate(in, sellerID); err != nil {
		return models.Book{}, err
	}

	status := models.StatusPending
	if sellerRole == models.RoleAdmin {
		status = models.StatusAvailable
	}

	book := models.Book{
		BookID:       utils.GenerateID(),
		Title:        strings.TrimSpace(in.Title),
		Author:       strings.TrimSpace(in.Author),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Quantity:     in.Quantity,
		SoldQuantity: 0,
		Status:       status,
		SellerID:     sellerID,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return models.Book{}, fmt.Errorf("service: failed to create book for seller %s: %w", sellerID, err)
	}

	return book, nil
}

func validateCreate(in CreateInput, sellerID string) error {
	switch {
	case sellerID == "":
		return fmt.Errorf("service: %w - missing seller", marketerrors.ErrValidation)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("service: %w - title is required", marketerrors.ErrValidation)
	case strings.TrimSpace(in.Author) == "":
		return fmt.Errorf("service: %w - author is required", marketerrors.ErrValidation)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("service: %w - description is required", marketerrors.ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("service: %w - price must be positive", marketerrors.ErrValidation)
	case in.Quantity < 0:
		return fmt.Errorf("service: %w - quantity cannot be negative", marketerrors.ErrValidation)
	}
	return nil
}

// Review approves or rejects a pending listing
func (s *ListingService) Review(ctx context.Context, bookID string, action models.ReviewAction, reviewerRole models.Role) (models.Book, error) {
	if reviewerRole != models.RoleAdmin {
		return models.Book{}, fmt.Errorf("service: %w - review requires admin", marketerrors.ErrForbidden)
	}

	var next models.BookStatus
	switch action {
	case models.ActionApprove:
		next = models.StatusAvailable
	case models.ActionReject:
		next = models.StatusRejected
	default:
		return models.Book{}, fmt.Errorf("service: %w - unknown review action %q", marketerrors.ErrValidation, action)
	}

	var reviewed models.Book
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		book, err := s.repo.GetBookForUpdate(txCtx, bookID)
		if err != nil {
			return err
		}
		if book.Status != models.StatusPending {
			return fmt.Errorf("%w - book %s is %s, not pending review", marketerrors.ErrInvalidState, bookID, book.Status)
		}

		book.Status = next
		if err := s.repo.UpdateBook(txCtx, book); err != nil {
			return err
		}
		reviewed = book
		return nil
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("service: failed to review book %s: %w", bookID, err)
	}

	return reviewed, nil
}

// ListAvailable returns purchasable books annotated with the seller's display name
func (s *ListingService) ListAvailable(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.repo.ListBooks(ctx, models.BookFilter{Status: models.StatusAvailable, Stock: models.StockInStock})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list available books: %w", err)
	}

	// buyers only see the seller's display name
	for i := range listings {
		listings[i].Seller.Email = ""
	}
	return listings, nil
}

// ListPending returns listings awaiting review with seller identity and contact
func (s *ListingService) ListPending(ctx context.Context, requesterRole models.Role) ([]models.Listing, error) {
	if requesterRole != models.RoleAdmin {
		return nil, fmt.Errorf("service: %w - pending listings require admin", marketerrors.ErrForbidden)
	}

	listings, err := s.repo.ListBooks(ctx, models.BookFilter{Status: models.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list pending books: %w", err)
	}
	return listings, nil
}

// ListBySeller returns every book owned by sellerID regardless of status
func (s *ListingService) ListBySeller(ctx context.Context, sellerID string) ([]models.Book, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("service: %w - empty seller ID", marketerrors.ErrValidation)
	}

	listings, err := s.repo.ListBooks(ctx, models.BookFilter{SellerID: sellerID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list books for seller %s: %w", sellerID, err)
	}

	books := make([]models.Book, 0, len(listings))
	for _, l := range listings {
		books = append(books, l.Book)
	}
	return books, nil
}

// Statistics aggregates the whole catalogue for admins
func (s *ListingService) Statistics(ctx context.Context, requesterRole models.Role) (models.Statistics, error) {
	if requesterRole != models.RoleAdmin {
		return models.Statistics{}, fmt.Errorf("service: %w - statistics require admin", marketerrors.ErrForbidden)
	}

	var stats models.Statistics
	err := s.repo.WithSnapshot(ctx, func(txCtx context.Context) error {
		var err error
		if stats.TotalBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{}); err != nil {
			return err
		}
		if stats.AvailableBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{Status: models.StatusAvailable, Stock: models.StockInStock}); err != nil {
			return err
		}
		if stats.SoldBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{Status: models.StatusSold}); err != nil {
			return err
		}
		if stats.PendingBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{Status: models.StatusPending}); err != nil {
			return err
		}
		if stats.OutOfStock, err = s.repo.CountBooks(txCtx, models.BookFilter{Status: models.StatusAvailable, Stock: models.StockOutOfStock}); err != nil {
			return err
		}
		if stats.TotalQuantity, err = s.repo.SumQuantity(txCtx, models.BookFilter{Status: models.StatusAvailable}); err != nil {
			return err
		}
		stats.TotalSoldQuantity, err = s.repo.SumSoldQuantity(txCtx, models.BookFilter{})
		return err
	})
	if err != nil {
		return models.Statistics{}, fmt.Errorf("service: failed to compute statistics: %w", err)
	}

	return stats, nil
}

// SellerStatistics counts a user's listings by status and the purchases they made as a buyer
func (s *ListingService) SellerStatistics(ctx context.Context, sellerID string) (models.SellerStatistics, error) {
	if sellerID == "" {
		return models.SellerStatistics{}, fmt.Errorf("service: %w - empty seller ID", marketerrors.ErrValidation)
	}

	var stats models.SellerStatistics
	err := s.repo.WithSnapshot(ctx, func(txCtx context.Context) error {
		var err error
		if stats.TotalBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{SellerID: sellerID}); err != nil {
			return err
		}
		if stats.PendingBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{SellerID: sellerID, Status: models.StatusPending}); err != nil {
			return err
		}
		if stats.ApprovedBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{SellerID: sellerID, Status: models.StatusAvailable}); err != nil {
			return err
		}
		if stats.RejectedBooks, err = s.repo.CountBooks(txCtx, models.BookFilter{SellerID: sellerID, Status: models.StatusRejected}); err != nil {
			return err
		}
		stats.TotalPurchases, err = s.repo.CountPurchasesByBuyer(txCtx, sellerID)
		return err
	})
	if err != nil {
		return models.SellerStatistics{}, fmt.Errorf("service: failed to compute statistics for seller %s: %w", sellerID, err)
	}

	return stats, nil
}
