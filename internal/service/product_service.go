package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidSpecifications marks malformed specification input. It is a
// validation failure: nothing is written when it occurs.
var ErrInvalidSpecifications = errors.New("specifications must be a JSON object or an array of {key,label,value} entries")

// CreateProductInput carries the admin form fields for a new product.
// FeaturesText is raw textarea content, one feature per line.
// SpecificationsJSON is raw JSON, either an object or an entry array.
type CreateProductInput struct {
	Name               string
	ImageURL           string
	Description        string
	FeaturesText       string
	SpecificationsJSON string
	InStock            *bool
}

// UpdateProductInput carries a partial update; nil fields are untouched
type UpdateProductInput struct {
	Name               *string
	ImageURL           *string
	Description        *string
	FeaturesText       *string
	SpecificationsJSON *string
	InStock            *bool
}

// ProductService defines the interface for product business logic
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// List returns the whole catalog, newest first
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns one product or repository.ErrProductNotFound
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Create parses the form fields and inserts a new product. Parsing happens
// before the insert, so malformed input never leaves a partial row.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	specs, err := ParseSpecifications(input.SpecificationsJSON)
	if err != nil {
		return nil, err
	}

	// In-stock defaults to true for new products
	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	product := &domain.Product{
		ID:             uuid.New(),
		Name:           input.Name,
		ImageURL:       input.ImageURL,
		Description:    input.Description,
		Features:       ParseFeatures(input.FeaturesText),
		Specifications: specs,
		InStock:        inStock,
		CreatedAt:      time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update applies the supplied fields and returns the refreshed product
func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	update := repository.ProductUpdate{
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		InStock:     input.InStock,
	}

	if input.FeaturesText != nil {
		features := ParseFeatures(*input.FeaturesText)
		update.Features = &features
	}
	if input.SpecificationsJSON != nil {
		specs, err := ParseSpecifications(*input.SpecificationsJSON)
		if err != nil {
			return nil, err
		}
		update.Specifications = &specs
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, id)
}

// Delete removes a product permanently
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// SetInStock flips the stock flag and returns the refreshed product
func (s *productService) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*domain.Product, error) {
	if err := s.productRepo.SetInStock(ctx, id, inStock); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, id)
}

// ParseFeatures splits textarea content into an ordered feature list.
// Lines are split on newlines; blank lines are discarded.
func ParseFeatures(text string) []string {
	features := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		features = append(features, line)
	}
	return features
}

// ParseSpecifications parses raw specification JSON into an ordered entry
// list. Two shapes are accepted: a flat JSON object, whose keys become both
// key and label in document order, and an array of {key,label,value}
// entries. Anything else fails with ErrInvalidSpecifications.
func ParseSpecifications(raw string) ([]domain.SpecEntry, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []domain.SpecEntry{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrInvalidSpecifications
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, ErrInvalidSpecifications
	}

	var entries []domain.SpecEntry
	switch delim {
	case '{':
		entries, err = parseSpecObject(dec)
	case '[':
		entries, err = parseSpecArray(trimmed)
	default:
		return nil, ErrInvalidSpecifications
	}
	if err != nil {
		return nil, err
	}

	// Reject trailing garbage after the document
	if delim == '{' {
		if _, err := dec.Token(); err != io.EOF {
			return nil, ErrInvalidSpecifications
		}
	}

	return entries, nil
}

// parseSpecObject reads object members with the token decoder so that
// insertion order survives into the entry list
func parseSpecObject(dec *json.Decoder) ([]domain.SpecEntry, error) {
	entries := []domain.SpecEntry{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, ErrInvalidSpecifications
		}
		key, ok := keyTok.(string)
		if !ok || key == "" {
			return nil, ErrInvalidSpecifications
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, ErrInvalidSpecifications
		}

		var value string
		switch v := valTok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = fmt.Sprintf("%t", v)
		case nil:
			value = ""
		default:
			// Nested objects or arrays have no place in a flat spec table
			return nil, ErrInvalidSpecifications
		}

		entries = append(entries, domain.SpecEntry{Key: key, Label: key, Value: value})
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, ErrInvalidSpecifications
	}

	return entries, nil
}

// parseSpecArray decodes the explicit entry-list form
func parseSpecArray(raw string) ([]domain.SpecEntry, error) {
	entries := []domain.SpecEntry{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, ErrInvalidSpecifications
	}

	for i := range entries {
		if entries[i].Key == "" {
			return nil, ErrInvalidSpecifications
		}
		if entries[i].Label == "" {
			entries[i].Label = entries[i].Key
		}
	}

	return entries, nil
}
