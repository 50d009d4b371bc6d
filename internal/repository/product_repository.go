package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductUpdate carries the fields of a partial product update. Nil fields
// keep their stored values. The identifier is immutable and never updatable.
type ProductUpdate struct {
	Name           *string
	ImageURL       *string
	Description    *string
	Features       *[]string
	Specifications *[]domain.SpecEntry
	InStock        *bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetInStock(ctx context.Context, id uuid.UUID, inStock bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	features, err := json.Marshal(product.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	specs, err := json.Marshal(product.Specifications)
	if err != nil {
		return fmt.Errorf("failed to encode specifications: %w", err)
	}

	query := `
		INSERT INTO products (id, name, image_url, description, features, specifications, in_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.ImageURL,
		product.Description,
		features,
		specs,
		product.InStock,
		product.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update applies the supplied fields to an existing product; unsupplied
// fields retain their prior values
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) error {
	setClauses := []string{}
	args := []interface{}{id}
	argIndex := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if update.Name != nil {
		addClause("name", *update.Name)
	}
	if update.ImageURL != nil {
		addClause("image_url", *update.ImageURL)
	}
	if update.Description != nil {
		addClause("description", *update.Description)
	}
	if update.Features != nil {
		features, err := json.Marshal(*update.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features: %w", err)
		}
		addClause("features", features)
	}
	if update.Specifications != nil {
		specs, err := json.Marshal(*update.Specifications)
		if err != nil {
			return fmt.Errorf("failed to encode specifications: %w", err)
		}
		addClause("specifications", specs)
	}
	if update.InStock != nil {
		addClause("in_stock", *update.InStock)
	}

	if len(setClauses) == 0 {
		// Nothing to change; still report a missing row as not found
		_, err := r.FindByID(ctx, id)
		return err
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $1", strings.Join(setClauses, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// SetInStock is the narrow update behind the stock-toggle control
func (r *productRepository) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) error {
	query := `UPDATE products SET in_stock = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, inStock)
	if err != nil {
		return fmt.Errorf("failed to update stock status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, image_url, description, features, specifications, in_stock, created_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves every product, newest first. An empty catalog yields an
// empty slice, not an error.
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, image_url, description, features, specifications, in_stock, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the total number of products
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var features, specs []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.ImageURL,
		&product.Description,
		&features,
		&specs,
		&product.InStock,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(features, &product.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	if err := json.Unmarshal(specs, &product.Specifications); err != nil {
		return nil, fmt.Errorf("failed to decode specifications: %w", err)
	}

	return product, nil
}
