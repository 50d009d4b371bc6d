package transport

import (
	"encoding/json"
	"net/http"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/mailer"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotifyHandler is the standalone enquiry-email boundary. It keeps the
// request/response contract of the hosted function it replaces: permissive
// CORS, 200 with the provider's JSON on success, 500 with {"error": ...} on
// any failure, no retries.
type NotifyHandler struct {
	mail   mailer.Mailer
	logger *zap.Logger
}

// NewNotifyHandler creates a new NotifyHandler
func NewNotifyHandler(mail mailer.Mailer, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{
		mail:   mail,
		logger: logger,
	}
}

// RegisterRoutes mounts the dispatch route with its own CORS policy
func (h *NotifyHandler) RegisterRoutes(r chi.Router, rateLimitMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.NotifyCORSMiddleware())
		r.Use(rateLimitMiddleware)
		r.Post("/functions/send-enquiry-email", h.SendEnquiryEmail)
	})
}

// SendEnquiryEmail relays an enquiry payload to the email provider
func (h *NotifyHandler) SendEnquiryEmail(w http.ResponseWriter, r *http.Request) {
	var req mailer.EnquiryEmail

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Enquiry email validation failed", zap.Error(err))
		h.respondError(w, "invalid enquiry email payload")
		return
	}

	h.logger.Info("Sending enquiry email",
		zap.String("user_name", req.UserName),
		zap.String("user_email", req.UserEmail),
		zap.String("product_name", req.ProductName),
	)

	result, err := h.mail.SendEnquiry(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to send enquiry email", zap.Error(err))
		h.respondError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

// respondError writes the function-style error payload; every failure is a
// plain 500 with an error string
func (h *NotifyHandler) respondError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
