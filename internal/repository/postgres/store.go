package postgres

import (
	"bookstall/internal/marketerrors"
	"bookstall/internal/models"
	"bookstall/internal/repository"
	"bookstall/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 5 * time.Second

// Store implements repository.Store on a pgx connection pool
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

var _ repository.Store = (*Store)(nil)

// Open connects to dsn and verifies the connection
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}

	store := New(pool, timeout)
	if err := store.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return store, nil
}

// New wraps an existing pool. A non-positive timeout selects the default.
func New(pool *pgxpool.Pool, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{pool: pool, timeout: timeout}
}

// Pool exposes the underlying pool, e.g. for migrations
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

const bookColumns = `b.id, b.title, b.author, b.description, b.price, b.quantity, b.sold_quantity, b.status, b.seller_id, b.created_at`

func scanBook(row pgx.Row, extra ...any) (models.Book, error) {
	var b models.Book
	var status string
	dest := append([]any{
		&b.BookID, &b.Title, &b.Author, &b.Description, &b.Price,
		&b.Quantity, &b.SoldQuantity, &status, &b.SellerID, &b.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Book{}, err
	}
	b.Status = models.BookStatus(status)
	return b, nil
}

// bookWhere renders filter as a WHERE clause over alias b
func bookWhere(f models.BookFilter) (string, []any) {
	clauses := []string{"TRUE"}
	args := []any{}

	if f.Status != "" {
		args = append(args, string(f.Status))
		clauses = append(clauses, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		clauses = append(clauses, fmt.Sprintf("b.seller_id = $%d", len(args)))
	}
	switch f.Stock {
	case models.StockInStock:
		clauses = append(clauses, "b.quantity > 0")
	case models.StockOutOfStock:
		clauses = append(clauses, "b.quantity = 0")
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// CreateBook inserts a new book
func (s *Store) CreateBook(ctx context.Context, book models.Book) error {
	const stmt = `
INSERT INTO books (id, title, author, description, price, quantity, sold_quantity, status, seller_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.exec(ctx, stmt,
		book.BookID, book.Title, book.Author, book.Description, book.Price,
		book.Quantity, book.SoldQuantity, string(book.Status), book.SellerID, book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// GetBook returns a book by ID
func (s *Store) GetBook(ctx context.Context, bookID string) (models.Book, error) {
	return s.getBook(ctx, bookID, "")
}

// GetBookForUpdate row-locks the book until the surrounding transaction ends
func (s *Store) GetBookForUpdate(ctx context.Context, bookID string) (models.Book, error) {
	return s.getBook(ctx, bookID, "FOR UPDATE")
}

func (s *Store) getBook(ctx context.Context, bookID, lock string) (models.Book, error) {
	if !utils.IsValidID(bookID) {
		return models.Book{}, fmt.Errorf("get book %s: %w", bookID, marketerrors.ErrBookNotFound)
	}

	sql := `SELECT ` + bookColumns + ` FROM books b WHERE b.id = $1 ` + lock

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row pgx.Row
	if tx := txFromContext(ctx); tx != nil {
		row = tx.QueryRow(ctx, sql, bookID)
	} else {
		row = s.pool.QueryRow(ctx, sql, bookID)
	}

	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, fmt.Errorf("get book %s: %w", bookID, marketerrors.ErrBookNotFound)
		}
		return models.Book{}, fmt.Errorf("get book %s: %w", bookID, err)
	}
	return b, nil
}

// UpdateBook writes the mutable state of a book: stock, sales and status
func (s *Store) UpdateBook(ctx context.Context, book models.Book) error {
	const stmt = `UPDATE books SET quantity = $2, sold_quantity = $3, status = $4 WHERE id = $1`

	if !utils.IsValidID(book.BookID) {
		return fmt.Errorf("update book %s: %w", book.BookID, marketerrors.ErrBookNotFound)
	}
	tag, err := s.exec(ctx, stmt, book.BookID, book.Quantity, book.SoldQuantity, string(book.Status))
	if err != nil {
		return fmt.Errorf("update book %s: %w", book.BookID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update book %s: %w", book.BookID, marketerrors.ErrBookNotFound)
	}
	return nil
}

// ListBooks returns books matching filter joined with their sellers, oldest first
func (s *Store) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Listing, error) {
	where, args := bookWhere(filter)
	sql := `
SELECT ` + bookColumns + `, COALESCE(u.username, ''), COALESCE(u.email, '')
FROM books b
LEFT JOIN users u ON u.id = b.seller_id
` + where + `
ORDER BY b.created_at, b.id`

	listings, err := query(ctx, s, sql, args, func(row pgx.Row) (models.Listing, error) {
		var l models.Listing
		b, err := scanBook(row, &l.Seller.Username, &l.Seller.Email)
		if err != nil {
			return models.Listing{}, err
		}
		l.Book = b
		l.Seller.UserID = b.SellerID
		return l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return listings, nil
}

// CountBooks returns the number of books matching filter
func (s *Store) CountBooks(ctx context.Context, filter models.BookFilter) (int, error) {
	return s.aggregate(ctx, "COUNT(*)", filter)
}

// SumQuantity returns the remaining stock across books matching filter
func (s *Store) SumQuantity(ctx context.Context, filter models.BookFilter) (int, error) {
	return s.aggregate(ctx, "COALESCE(SUM(b.quantity), 0)", filter)
}

// SumSoldQuantity returns the copies sold across books matching filter
func (s *Store) SumSoldQuantity(ctx context.Context, filter models.BookFilter) (int, error) {
	return s.aggregate(ctx, "COALESCE(SUM(b.sold_quantity), 0)", filter)
}

func (s *Store) aggregate(ctx context.Context, expr string, filter models.BookFilter) (int, error) {
	where, args := bookWhere(filter)
	var total int64
	if err := s.queryRow(ctx, `SELECT `+expr+` FROM books b `+where, args, &total); err != nil {
		return 0, fmt.Errorf("aggregate books: %w", err)
	}
	return int(total), nil
}

// CreatePurchase appends a purchase to the ledger
func (s *Store) CreatePurchase(ctx context.Context, p models.Purchase) error {
	const stmt = `
INSERT INTO purchases (id, buyer_id, book_id, quantity, total_price, purchase_date)
VALUES ($1, $2, $3, $4, $5, $6)`

	if p.Quantity < 1 {
		return fmt.Errorf("create purchase: %w - quantity must be at least 1", marketerrors.ErrValidation)
	}
	if _, err := s.exec(ctx, stmt, p.PurchaseID, p.BuyerID, p.BookID, p.Quantity, p.TotalPrice, p.PurchaseDate); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// ListPurchasesByBuyer returns a buyer's purchases with their books, most recent first
func (s *Store) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]models.PurchaseRecord, error) {
	if !utils.IsValidID(buyerID) {
		return []models.PurchaseRecord{}, nil
	}

	const sql = `
SELECT p.id, p.buyer_id, p.book_id, p.quantity, p.total_price, p.purchase_date, ` + bookColumns + `
FROM purchases p
JOIN books b ON b.id = p.book_id
WHERE p.buyer_id = $1
ORDER BY p.purchase_date DESC`

	records, err := query(ctx, s, sql, []any{buyerID}, func(row pgx.Row) (models.PurchaseRecord, error) {
		var r models.PurchaseRecord
		var status string
		err := row.Scan(
			&r.PurchaseID, &r.BuyerID, &r.BookID, &r.Quantity, &r.TotalPrice, &r.PurchaseDate,
			&r.Book.BookID, &r.Book.Title, &r.Book.Author, &r.Book.Description, &r.Book.Price,
			&r.Book.Quantity, &r.Book.SoldQuantity, &status, &r.Book.SellerID, &r.Book.CreatedAt,
		)
		r.Book.Status = models.BookStatus(status)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("list purchases for buyer %s: %w", buyerID, err)
	}
	return records, nil
}

// CountPurchasesByBuyer returns how many purchases a buyer has made
func (s *Store) CountPurchasesByBuyer(ctx context.Context, buyerID string) (int, error) {
	if !utils.IsValidID(buyerID) {
		return 0, nil
	}
	var total int64
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE buyer_id = $1`, []any{buyerID}, &total); err != nil {
		return 0, fmt.Errorf("count purchases for buyer %s: %w", buyerID, err)
	}
	return int(total), nil
}

// CreateUser inserts a new account; emails are unique
func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	const stmt = `
INSERT INTO users (id, username, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.exec(ctx, stmt, u.UserID, u.Username, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, marketerrors.ErrEmailTaken)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser returns an account by ID
func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	if !utils.IsValidID(userID) {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	return s.getUser(ctx, `id = $1`, userID)
}

// GetUserByEmail returns an account by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, `email = $1`, email)
}

func (s *Store) getUser(ctx context.Context, cond string, arg string) (models.User, error) {
	var u models.User
	var role string
	err := s.queryRow(ctx,
		`SELECT id, username, email, password_hash, role, created_at FROM users WHERE `+cond,
		[]any{arg},
		&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("get user %s: %w", arg, marketerrors.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("get user %s: %w", arg, err)
	}
	u.Role = models.Role(role)
	return u, nil
}
