package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
)

type ProductReadRepository struct {
	db *sqlx.DB
}

func NewProductReadRepository(db *sqlx.DB) *ProductReadRepository {
	return &ProductReadRepository{db: db}
}

// ListByOwner returns the owner's products, most recently created first.
// The owner predicate is the tenant isolation boundary: no query in this
// repository runs without it.
func (r *ProductReadRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.ProductDB, error) {
	const query = `
		SELECT id, product_code, product, qty, per_price, user_email, created_at
		FROM products
		WHERE user_email = $1
		ORDER BY id DESC
	`

	products := make([]models.ProductDB, 0)
	err := r.db.SelectContext(ctx, &products, query, ownerEmail)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{ownerEmail},
		"result_count", len(products),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return products, nil
}

type ProductWriteRepository struct {
	db *sqlx.DB
}

func NewProductWriteRepository(db *sqlx.DB) *ProductWriteRepository {
	return &ProductWriteRepository{db: db}
}

// Save inserts a new product stamped with the owner's email and returns
// the created row.
func (r *ProductWriteRepository) Save(ctx context.Context, ownerEmail, productCode, product string, qty int64, perPrice float64) (*models.ProductDB, error) {
	const query = `
		INSERT INTO products (product_code, product, qty, per_price, user_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_code, product, qty, per_price, user_email, created_at
	`
	args := []any{productCode, product, qty, perPrice, ownerEmail}

	var row models.ProductDB
	err := r.db.GetContext(ctx, &row, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &row, nil
}

// Update replaces every field of the row matching both id and owner in a
// single statement. A wrong id and a row owned by someone else both yield
// ErrNotFound.
func (r *ProductWriteRepository) Update(ctx context.Context, ownerEmail string, id int64, productCode, product string, qty int64, perPrice float64) (*models.ProductDB, error) {
	const query = `
		UPDATE products
		SET product_code = $1, product = $2, qty = $3, per_price = $4
		WHERE id = $5 AND user_email = $6
		RETURNING id, product_code, product, qty, per_price, user_email, created_at
	`
	args := []any{productCode, product, qty, perPrice, id, ownerEmail}

	var row models.ProductDB
	err := r.db.GetContext(ctx, &row, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// Delete removes the row matching both id and owner. Same dual-match
// semantics as Update: zero rows affected yields ErrNotFound.
func (r *ProductWriteRepository) Delete(ctx context.Context, ownerEmail string, id int64) error {
	const query = `
		DELETE FROM products
		WHERE id = $1 AND user_email = $2
	`
	args := []any{id, ownerEmail}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
