package purchase

import (
	"bookstall/internal/clock"
	"bookstall/internal/marketerrors"
	"bookstall/internal/models"
	"bookstall/internal/repository"
	"bookstall/utils"
	"context"
	"fmt"
)

// BuyResult is the outcome of a successful purchase
type BuyResult struct {
	Book     models.Book     `json:"book"`
	Purchase models.Purchase `json:"purchase"`
}

// PurchaseService executes buy transactions against listed stock
type PurchaseService struct {
	repo  repository.MarketDB
	clock clock.Clock
}

// NewPurchaseService creates a new PurchaseService instance
func NewPurchaseService(repo repository.MarketDB, clk clock.Clock) *PurchaseService {
	return &PurchaseService{
		repo:  repo,
		clock: clk,
	}
}

// Buy takes quantity copies of a book for buyerID. The stock update and the
// purchase record are written together or not at all.
func (s *PurchaseService) Buy(ctx context.Context, bookID, buyerID string, quantity int) (BuyResult, error) {
	if err := validateBuy(bookID, buyerID, quantity); err != nil {
		return BuyResult{}, err
	}

	var result BuyResult
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		book, err := s.repo.GetBookForUpdate(txCtx, bookID)
		if err != nil {
			return err
		}

		// short stock wins over a bad status, unless nothing is left (a sold book is reported as sold)
		if book.Quantity > 0 && quantity > book.Quantity {
			return fmt.Errorf("%w - requested %d, in stock %d", marketerrors.ErrInsufficientStock, quantity, book.Quantity)
		}
		if book.Status != models.StatusAvailable {
			return fmt.Errorf("%w - book %s is %s", marketerrors.ErrInvalidState, bookID, book.Status)
		}
		if quantity > book.Quantity {
			return fmt.Errorf("%w - requested %d, in stock %d", marketerrors.ErrInsufficientStock, quantity, book.Quantity)
		}

		purchase := models.Purchase{
			PurchaseID:   utils.GenerateID(),
			BuyerID:      buyerID,
			BookID:       bookID,
			Quantity:     quantity,
			TotalPrice:   book.Price * float64(quantity),
			PurchaseDate: s.clock.Now(),
		}

		book.Sell(quantity)
		if err := s.repo.UpdateBook(txCtx, book); err != nil {
			return err
		}
		if err := s.repo.CreatePurchase(txCtx, purchase); err != nil {
			return err
		}

		result = BuyResult{Book: book, Purchase: purchase}
		return nil
	})
	if err != nil {
		return BuyResult{}, fmt.Errorf("service: failed to buy book %s for buyer %s: %w", bookID, buyerID, err)
	}

	return result, nil
}

func validateBuy(bookID, buyerID string, quantity int) error {
	if bookID == "" || buyerID == "" {
		return fmt.Errorf("service: %w - missing bookID or buyerID", marketerrors.ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("service: %w - quantity must be at least 1", marketerrors.ErrValidation)
	}
	return nil
}

// ListPurchasesByBuyer returns a buyer's purchase history, most recent first
func (s *PurchaseService) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]models.PurchaseRecord, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("service: %w - empty buyer ID", marketerrors.ErrValidation)
	}

	records, err := s.repo.ListPurchasesByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list purchases for buyer %s: %w", buyerID, err)
	}
	return records, nil
}
