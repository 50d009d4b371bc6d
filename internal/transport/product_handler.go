package transport

import (
	"net/http"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/assets"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/middleware"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Features
// arrive as raw textarea content and specifications as raw JSON, exactly as
// the admin form submits them.
type CreateProductRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	ImageURL       string `json:"image_url" validate:"max=500"`
	Description    string `json:"description"`
	Features       string `json:"features"`
	Specifications string `json:"specifications"`
	InStock        *bool  `json:"in_stock"`
}

// UpdateProductRequest represents a partial product update; omitted fields
// keep their stored values
type UpdateProductRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	ImageURL       *string `json:"image_url" validate:"omitempty,max=500"`
	Description    *string `json:"description"`
	Features       *string `json:"features"`
	Specifications *string `json:"specifications"`
	InStock        *bool   `json:"in_stock"`
}

// SetStockRequest represents the stock-toggle payload
type SetStockRequest struct {
	InStock *bool `json:"in_stock" validate:"required"`
}

// ProductResponse is a product with its image path resolved for serving
type ProductResponse struct {
	*domain.Product
	ResolvedImageURL string `json:"resolved_image_url"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes and the admin CRUD
// routes behind the auth and admin gates
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})

	r.Get("/api/product-images/resolve", h.ResolveImage)

	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/stock", h.SetStock)
	})
}

// List returns the whole catalog, newest first
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}

	middleware.RespondWithJSON(w, http.StatusOK, responses)
}

// Get returns a single product or a distinct not-found state
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:               req.Name,
		ImageURL:           req.ImageURL,
		Description:        req.Description,
		FeaturesText:       req.Features,
		SpecificationsJSON: req.Specifications,
		InStock:            req.InStock,
	})
	if err != nil {
		if err == service.ErrInvalidSpecifications {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "specifications", Message: err.Error()},
			})
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update handles partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, service.UpdateProductInput{
		Name:               req.Name,
		ImageURL:           req.ImageURL,
		Description:        req.Description,
		FeaturesText:       req.Features,
		SpecificationsJSON: req.Specifications,
		InStock:            req.InStock,
	})
	if err != nil {
		switch err {
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case service.ErrInvalidSpecifications:
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "specifications", Message: err.Error()},
			})
		default:
			h.logger.Error("Failed to update product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product; the admin UI confirms before calling this
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// SetStock handles the stock-toggle control
func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req SetStockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Stock toggle validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.SetInStock(r.Context(), id, *req.InStock)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update stock status", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update stock status")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// ResolveImage maps a stored logical image path to its served URL. Unknown
// paths echo back unchanged.
func (h *ProductHandler) ResolveImage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"url": assets.ResolveProductImage(path),
	})
}

// parseID extracts and parses the {id} route parameter
func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Debug("Invalid product ID", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		Product:          product,
		ResolvedImageURL: assets.ResolveProductImage(product.ImageURL),
	}
}
