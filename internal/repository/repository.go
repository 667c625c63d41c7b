package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"bookstall/internal/marketerrors"
	model "bookstall/internal/models"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
)

var errReadOnly = errors.New("write inside a read-only snapshot")

// MarketDB defines the book and purchase storage interface for the marketplace
type MarketDB interface {
	// WithTx runs fn in a transaction. Calls nested inside fn reuse it.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// WithSnapshot runs fn read-only against one consistent view of books and purchases
	WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error

	CreateBook(ctx context.Context, book model.Book) error
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	// GetBookForUpdate reads a book and locks it until the surrounding transaction ends
	GetBookForUpdate(ctx context.Context, bookID string) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) error
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Listing, error)
	CountBooks(ctx context.Context, filter model.BookFilter) (int, error)
	SumQuantity(ctx context.Context, filter model.BookFilter) (int, error)
	SumSoldQuantity(ctx context.Context, filter model.BookFilter) (int, error)

	CreatePurchase(ctx context.Context, purchase model.Purchase) error
	ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.PurchaseRecord, error)
	CountPurchasesByBuyer(ctx context.Context, buyerID string) (int, error)
}

// UserDB defines the account storage interface
type UserDB interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB and UserDB
type MemoryRepo struct {
	mu           sync.RWMutex
	books        map[string]model.Book // key: bookID -> value: book
	bookOrder    []string              // bookIDs in insertion order
	purchases    []model.Purchase      // append-only ledger
	users        map[string]model.User // key: userID -> value: user
	usersByEmail map[string]string     // key: email -> value: userID

	lockMu    sync.Mutex
	bookLocks map[string]*sync.Mutex // key: bookID -> row lock held by a transaction
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		books:        make(map[string]model.Book),
		users:        make(map[string]model.User),
		usersByEmail: make(map[string]string),
		bookLocks:    make(map[string]*sync.Mutex),
	}
}

type txKey struct{}

// memTx buffers writes until commit and tracks the book locks it holds.
// A frozen memTx is a read-only snapshot holding the whole catalogue and ledger.
type memTx struct {
	books     map[string]model.Book
	newBooks  []string
	purchases []model.Purchase
	held      map[string]*sync.Mutex

	frozen bool
	order  []string
}

func (tx *memTx) readOnly() bool {
	return tx != nil && tx.frozen
}

func txFromContext(ctx context.Context) *memTx {
	tx, _ := ctx.Value(txKey{}).(*memTx)
	return tx
}

// WithTx runs fn with staged writes; they become visible only if fn returns nil
func (r *MemoryRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := &memTx{
		books: make(map[string]model.Book),
		held:  make(map[string]*sync.Mutex),
	}
	defer tx.release()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	r.commit(tx)
	return nil
}

// WithSnapshot runs fn against copies of the books and purchases taken under one read lock
func (r *MemoryRepo) WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	r.mu.RLock()
	tx := &memTx{
		books:     maps.Clone(r.books),
		purchases: slices.Clone(r.purchases),
		order:     slices.Clone(r.bookOrder),
		frozen:    true,
	}
	r.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

func (r *MemoryRepo) commit(tx *memTx) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookOrder = append(r.bookOrder, tx.newBooks...)
	for id, b := range tx.books {
		r.books[id] = b
	}
	r.purchases = append(r.purchases, tx.purchases...)
}

func (tx *memTx) release() {
	for _, l := range tx.held {
		l.Unlock()
	}
}

func (r *MemoryRepo) bookLock(bookID string) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	l, ok := r.bookLocks[bookID]
	if !ok {
		l = &sync.Mutex{}
		r.bookLocks[bookID] = l
	}
	return l
}

// lookupBook reads a book through the transaction's staged writes. Caller holds r.mu.
func (r *MemoryRepo) lookupBook(tx *memTx, bookID string) (model.Book, bool) {
	if tx != nil {
		if b, ok := tx.books[bookID]; ok || tx.frozen {
			return b, ok
		}
	}
	b, ok := r.books[bookID]
	return b, ok
}

// snapshot returns all books in insertion order as seen by tx. Caller holds r.mu.
func (r *MemoryRepo) snapshot(tx *memTx) []model.Book {
	order := r.bookOrder
	switch {
	case tx.readOnly():
		order = tx.order
	case tx != nil && len(tx.newBooks) > 0:
		order = append(append([]string(nil), order...), tx.newBooks...)
	}
	out := make([]model.Book, 0, len(order))
	for _, id := range order {
		if b, ok := r.lookupBook(tx, id); ok {
			out = append(out, b)
		}
	}
	return out
}

// ledger returns all purchases as seen by tx. Caller holds r.mu.
func (r *MemoryRepo) ledger(tx *memTx) []model.Purchase {
	switch {
	case tx.readOnly():
		return tx.purchases
	case tx != nil && len(tx.purchases) > 0:
		return append(append([]model.Purchase(nil), r.purchases...), tx.purchases...)
	}
	return r.purchases
}

// CreateBook stores a new book
func (r *MemoryRepo) CreateBook(ctx context.Context, book model.Book) error {
	if book.BookID == "" {
		return fmt.Errorf("create book: %w - empty book ID", marketerrors.ErrValidation)
	}

	tx := txFromContext(ctx)
	if tx.readOnly() {
		return fmt.Errorf("create book %s: %w", book.BookID, errReadOnly)
	}
	if tx != nil {
		r.mu.RLock()
		_, exists := r.lookupBook(tx, book.BookID)
		r.mu.RUnlock()
		if exists {
			return fmt.Errorf("create book %s: duplicate ID", book.BookID)
		}
		tx.books[book.BookID] = book
		tx.newBooks = append(tx.newBooks, book.BookID)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[book.BookID]; exists {
		return fmt.Errorf("create book %s: duplicate ID", book.BookID)
	}
	r.books[book.BookID] = book
	r.bookOrder = append(r.bookOrder, book.BookID)
	return nil
}

// GetBook returns a book by ID
func (r *MemoryRepo) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.lookupBook(txFromContext(ctx), bookID)
	if !ok {
		return model.Book{}, fmt.Errorf("get book %s: %w", bookID, marketerrors.ErrBookNotFound)
	}
	return b, nil
}

// GetBookForUpdate returns a book and, inside a transaction, holds its lock until the transaction ends
func (r *MemoryRepo) GetBookForUpdate(ctx context.Context, bookID string) (model.Book, error) {
	if tx := txFromContext(ctx); tx != nil {
		if tx.frozen {
			return model.Book{}, fmt.Errorf("lock book %s: %w", bookID, errReadOnly)
		}
		if _, held := tx.held[bookID]; !held {
			// locks exist only for stored books; books are never deleted
			r.mu.RLock()
			_, exists := r.lookupBook(tx, bookID)
			r.mu.RUnlock()
			if !exists {
				return model.Book{}, fmt.Errorf("get book %s: %w", bookID, marketerrors.ErrBookNotFound)
			}
			l := r.bookLock(bookID)
			l.Lock()
			tx.held[bookID] = l
		}
	}
	return r.GetBook(ctx, bookID)
}

// UpdateBook replaces the stored state of an existing book
func (r *MemoryRepo) UpdateBook(ctx context.Context, book model.Book) error {
	tx := txFromContext(ctx)
	if tx.readOnly() {
		return fmt.Errorf("update book %s: %w", book.BookID, errReadOnly)
	}
	if tx != nil {
		r.mu.RLock()
		_, exists := r.lookupBook(tx, book.BookID)
		r.mu.RUnlock()
		if !exists {
			return fmt.Errorf("update book %s: %w", book.BookID, marketerrors.ErrBookNotFound)
		}
		tx.books[book.BookID] = book
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[book.BookID]; !exists {
		return fmt.Errorf("update book %s: %w", book.BookID, marketerrors.ErrBookNotFound)
	}
	r.books[book.BookID] = book
	return nil
}

// ListBooks returns books matching filter joined with their sellers, oldest first
func (r *MemoryRepo) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := []model.Listing{}
	for _, b := range r.snapshot(txFromContext(ctx)) {
		if !filter.Matches(b) {
			continue
		}
		seller := model.Seller{UserID: b.SellerID}
		if u, ok := r.users[b.SellerID]; ok {
			seller.Username = u.Username
			seller.Email = u.Email
		}
		listings = append(listings, model.Listing{Book: b, Seller: seller})
	}
	return listings, nil
}

// CountBooks returns the number of books matching filter
func (r *MemoryRepo) CountBooks(ctx context.Context, filter model.BookFilter) (int, error) {
	return r.aggregate(ctx, filter, func(model.Book) int { return 1 }), nil
}

// SumQuantity returns the remaining stock across books matching filter
func (r *MemoryRepo) SumQuantity(ctx context.Context, filter model.BookFilter) (int, error) {
	return r.aggregate(ctx, filter, func(b model.Book) int { return b.Quantity }), nil
}

// SumSoldQuantity returns the copies sold across books matching filter
func (r *MemoryRepo) SumSoldQuantity(ctx context.Context, filter model.BookFilter) (int, error) {
	return r.aggregate(ctx, filter, func(b model.Book) int { return b.SoldQuantity }), nil
}

func (r *MemoryRepo) aggregate(ctx context.Context, filter model.BookFilter, value func(model.Book) int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, b := range r.snapshot(txFromContext(ctx)) {
		if filter.Matches(b) {
			total += value(b)
		}
	}
	return total
}

// CreatePurchase appends a purchase to the ledger
func (r *MemoryRepo) CreatePurchase(ctx context.Context, purchase model.Purchase) error {
	if purchase.Quantity < 1 {
		return fmt.Errorf("create purchase: %w - quantity must be at least 1", marketerrors.ErrValidation)
	}

	tx := txFromContext(ctx)
	if tx.readOnly() {
		return fmt.Errorf("create purchase: %w", errReadOnly)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lookupBook(tx, purchase.BookID); !ok {
		return fmt.Errorf("create purchase for book %s: %w", purchase.BookID, marketerrors.ErrBookNotFound)
	}
	if tx != nil {
		tx.purchases = append(tx.purchases, purchase)
		return nil
	}
	r.purchases = append(r.purchases, purchase)
	return nil
}

// ListPurchasesByBuyer returns a buyer's purchases with their books, most recent first
func (r *MemoryRepo) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]model.PurchaseRecord, error) {
	tx := txFromContext(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger := r.ledger(tx)

	records := []model.PurchaseRecord{}
	// walk backwards so equal timestamps keep the latest recorded first
	for i := len(ledger) - 1; i >= 0; i-- {
		p := ledger[i]
		if p.BuyerID != buyerID {
			continue
		}
		b, _ := r.lookupBook(tx, p.BookID)
		records = append(records, model.PurchaseRecord{Purchase: p, Book: b})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PurchaseDate.After(records[j].PurchaseDate)
	})
	return records, nil
}

// CountPurchasesByBuyer returns how many purchases a buyer has made
func (r *MemoryRepo) CountPurchasesByBuyer(ctx context.Context, buyerID string) (int, error) {
	tx := txFromContext(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.ledger(tx) {
		if p.BuyerID == buyerID {
			count++
		}
	}
	return count, nil
}

// CreateUser stores a new account; emails are unique
func (r *MemoryRepo) CreateUser(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.usersByEmail[user.Email]; taken {
		return fmt.Errorf("create user %s: %w", user.Email, marketerrors.ErrEmailTaken)
	}
	r.users[user.UserID] = user
	r.usersByEmail[user.Email] = user.UserID
	return nil
}

// GetUser returns an account by ID
func (r *MemoryRepo) GetUser(ctx context.Context, userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	return u, nil
}

// GetUserByEmail returns an account by email
func (r *MemoryRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usersByEmail[email]
	if !ok {
		return model.User{}, fmt.Errorf("get user by email %s: %w", email, marketerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// Ping always succeeds for the in-memory store
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (r *MemoryRepo) Close() error {
	return nil
}
