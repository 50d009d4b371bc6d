package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpecEntry is a single product specification line. Entries keep the order
// they were entered in, unlike an arbitrary key-value map.
type SpecEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product represents a product in the export catalog
type Product struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	ImageURL       string      `json:"image_url" db:"image_url"`
	Description    string      `json:"description" db:"description"`
	Features       []string    `json:"features" db:"features"`
	Specifications []SpecEntry `json:"specifications" db:"specifications"`
	InStock        bool        `json:"in_stock" db:"in_stock"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}
