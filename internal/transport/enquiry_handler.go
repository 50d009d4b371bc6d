package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/events"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/middleware"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitEnquiryRequest represents the public enquiry form payload
type SubmitEnquiryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Message   string `json:"message" validate:"required,max=1000"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// EnquiryHandler handles HTTP requests for enquiry operations
type EnquiryHandler struct {
	enquiryService service.EnquiryService
	bus            *events.Bus
	logger         *zap.Logger
}

// NewEnquiryHandler creates a new EnquiryHandler
func NewEnquiryHandler(enquiryService service.EnquiryService, bus *events.Bus, logger *zap.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryService: enquiryService,
		bus:            bus,
		logger:         logger,
	}
}

// RegisterRoutes registers the public submission route and the admin
// listing and realtime-stream routes
func (h *EnquiryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware, rateLimitMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware)
		r.Post("/api/enquiries", h.Submit)
	})

	r.Route("/api/admin/enquiries", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.List)
		r.Get("/stream", h.Stream)
	})
}

// Submit validates and persists a customer enquiry. Validation failures
// never reach the database; once the row is saved, the response is success
// regardless of what the notification attempt did.
func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitEnquiryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Enquiry validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "product_id", Message: "Invalid identifier"},
		})
		return
	}

	enquiry, err := h.enquiryService.Submit(r.Context(), service.SubmitEnquiryInput{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		ProductID: productID,
	})
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to submit enquiry", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit enquiry, please try again")
		return
	}

	h.logger.Info("Enquiry submitted",
		zap.String("enquiry_id", enquiry.ID.String()),
		zap.String("product_name", enquiry.ProductName),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, enquiry)
}

// List returns every enquiry, newest first
func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.enquiryService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list enquiries", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list enquiries")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, enquiries)
}

// Stream pushes the full refreshed enquiry list over SSE on connect and
// after every insert. The bus subscription lives exactly as long as the
// request: teardown happens when the client goes away, so navigating the
// admin panel never accumulates stale listeners.
func (h *EnquiryHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// A buffered channel of size one coalesces bursts of inserts into a
	// single refresh, mirroring the coarse listen-then-refetch design.
	notify := make(chan struct{}, 1)
	onCreated := func(_ *domain.Enquiry) {
		select {
		case notify <- struct{}{}:
		default:
		}
	}

	if err := h.bus.SubscribeEnquiryCreated(onCreated); err != nil {
		h.logger.Error("Failed to subscribe to enquiry events", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to open stream")
		return
	}
	defer func() {
		if err := h.bus.UnsubscribeEnquiryCreated(onCreated); err != nil {
			h.logger.Warn("Failed to unsubscribe from enquiry events", zap.Error(err))
		}
	}()

	if !h.writeEnquiries(w, r, flusher) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-notify:
			if !h.writeEnquiries(w, r, flusher) {
				return
			}
		}
	}
}

// writeEnquiries re-fetches the full ordered list and writes it as one SSE
// event. Returns false when the stream should close.
func (h *EnquiryHandler) writeEnquiries(w http.ResponseWriter, r *http.Request, flusher http.Flusher) bool {
	enquiries, err := h.enquiryService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to refresh enquiries for stream", zap.Error(err))
		return false
	}

	payload, err := json.Marshal(enquiries)
	if err != nil {
		h.logger.Error("Failed to encode enquiries for stream", zap.Error(err))
		return false
	}

	if _, err := fmt.Fprintf(w, "event: enquiries\ndata: %s\n\n", payload); err != nil {
		return false
	}
	flusher.Flush()

	return true
}
