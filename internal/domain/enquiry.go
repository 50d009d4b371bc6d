package domain

import (
	"time"

	"github.com/google/uuid"
)

// Enquiry is a customer request for information about a product. Rows are
// insert-only: the product name is a snapshot taken at submission time so
// later product renames never rewrite history.
type Enquiry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserName    string    `json:"user_name" db:"user_name"`
	UserEmail   string    `json:"user_email" db:"user_email"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
