package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/events"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/mailer"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitEnquiryInput is a validated customer enquiry. The product name is
// looked up server-side and snapshotted onto the row, never live-joined.
type SubmitEnquiryInput struct {
	Name      string
	Email     string
	Message   string
	ProductID uuid.UUID
}

// EnquiryService defines the interface for the enquiry submission flow
type EnquiryService interface {
	Submit(ctx context.Context, input SubmitEnquiryInput) (*domain.Enquiry, error)
	List(ctx context.Context) ([]*domain.Enquiry, error)
}

type enquiryService struct {
	enquiryRepo repository.EnquiryRepository
	productRepo repository.ProductRepository
	mail        mailer.Mailer
	bus         *events.Bus
	logger      *zap.Logger
}

// NewEnquiryService creates a new instance of EnquiryService
func NewEnquiryService(
	enquiryRepo repository.EnquiryRepository,
	productRepo repository.ProductRepository,
	mail mailer.Mailer,
	bus *events.Bus,
	logger *zap.Logger,
) EnquiryService {
	return &enquiryService{
		enquiryRepo: enquiryRepo,
		productRepo: productRepo,
		mail:        mail,
		bus:         bus,
		logger:      logger,
	}
}

// Submit persists the enquiry, then makes a best-effort notification
// attempt. The order is load-bearing: the customer's enquiry must be
// durable before any email is tried, and once it is, a failed send never
// turns the submission into an error.
func (s *enquiryService) Submit(ctx context.Context, input SubmitEnquiryInput) (*domain.Enquiry, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	enquiry := &domain.Enquiry{
		ID:          uuid.New(),
		UserName:    input.Name,
		UserEmail:   input.Email,
		ProductID:   product.ID,
		ProductName: product.Name,
		Message:     input.Message,
		CreatedAt:   time.Now(),
	}

	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		// Persistence failed: abort with no notification attempt
		return nil, fmt.Errorf("failed to save enquiry: %w", err)
	}

	if _, err := s.mail.SendEnquiry(ctx, mailer.EnquiryEmail{
		UserName:    enquiry.UserName,
		UserEmail:   enquiry.UserEmail,
		ProductName: enquiry.ProductName,
		Message:     enquiry.Message,
	}); err != nil {
		// The enquiry is already durable; log and carry on
		s.logger.Error("Failed to send enquiry notification",
			zap.String("enquiry_id", enquiry.ID.String()),
			zap.Error(err),
		)
	}

	s.bus.PublishEnquiryCreated(enquiry)

	return enquiry, nil
}

// List returns every enquiry, newest first
func (s *enquiryService) List(ctx context.Context) ([]*domain.Enquiry, error) {
	enquiries, err := s.enquiryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	return enquiries, nil
}
