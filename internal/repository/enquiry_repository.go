package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
)

// EnquiryVolume is one day's enquiry count, used by the dashboard chart
type EnquiryVolume struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProductEnquiryCount ranks a product by how often it is asked about
type ProductEnquiryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EnquiryRepository defines the interface for enquiry data access.
// Enquiries are insert-only; there is deliberately no update or delete.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) error
	List(ctx context.Context) ([]*domain.Enquiry, error)
	Count(ctx context.Context) (int, error)
	VolumeByDay(ctx context.Context, days int) ([]EnquiryVolume, error)
	TopProducts(ctx context.Context, limit int) ([]ProductEnquiryCount, error)
}

type enquiryRepository struct {
	db *sql.DB
}

// NewEnquiryRepository creates a new instance of EnquiryRepository
func NewEnquiryRepository(db *sql.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

// Create inserts a new enquiry into the database using parameterized queries
func (r *enquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	query := `
		INSERT INTO enquiries (id, user_name, user_email, product_id, product_name, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		enquiry.ID,
		enquiry.UserName,
		enquiry.UserEmail,
		enquiry.ProductID,
		enquiry.ProductName,
		enquiry.Message,
		enquiry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	return nil
}

// List retrieves every enquiry, newest first
func (r *enquiryRepository) List(ctx context.Context) ([]*domain.Enquiry, error) {
	query := `
		SELECT id, user_name, user_email, product_id, product_name, message, created_at
		FROM enquiries
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := []*domain.Enquiry{}
	for rows.Next() {
		enquiry := &domain.Enquiry{}
		err := rows.Scan(
			&enquiry.ID,
			&enquiry.UserName,
			&enquiry.UserEmail,
			&enquiry.ProductID,
			&enquiry.ProductName,
			&enquiry.Message,
			&enquiry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, enquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enquiries: %w", err)
	}

	return enquiries, nil
}

// Count returns the total number of enquiries
func (r *enquiryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enquiries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}
	return count, nil
}

// VolumeByDay aggregates enquiry counts per calendar day over the last
// `days` days including today, oldest first. The window opens at midnight
// so the result never groups into more than `days` distinct dates.
func (r *enquiryRepository) VolumeByDay(ctx context.Context, days int) ([]EnquiryVolume, error) {
	query := `
		SELECT to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM enquiries
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := midnight.AddDate(0, 0, -(days - 1))

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate enquiry volume: %w", err)
	}
	defer rows.Close()

	volumes := []EnquiryVolume{}
	for rows.Next() {
		var v EnquiryVolume
		if err := rows.Scan(&v.Date, &v.Count); err != nil {
			return nil, fmt.Errorf("failed to scan enquiry volume: %w", err)
		}
		volumes = append(volumes, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enquiry volume: %w", err)
	}

	return volumes, nil
}

// TopProducts ranks product names by enquiry count. Names are the
// denormalized snapshots, so renamed products rank under their old names
// for historical rows.
func (r *enquiryRepository) TopProducts(ctx context.Context, limit int) ([]ProductEnquiryCount, error) {
	query := `
		SELECT product_name, COUNT(*) AS enquiries
		FROM enquiries
		GROUP BY product_name
		ORDER BY enquiries DESC, product_name ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products by enquiries: %w", err)
	}
	defer rows.Close()

	counts := []ProductEnquiryCount{}
	for rows.Next() {
		var c ProductEnquiryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan product enquiry count: %w", err)
		}
		counts = append(counts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product enquiry counts: %w", err)
	}

	return counts, nil
}
