package service

import (
	"context"
	"fmt"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"
)

const (
	// dashboard chart windows
	volumeDays       = 7
	topProductsLimit = 5
)

// DashboardMetrics is the admin dashboard summary
type DashboardMetrics struct {
	ProductsCount   int                              `json:"products_count"`
	EnquiriesCount  int                              `json:"enquiries_count"`
	EnquiriesPerDay []repository.EnquiryVolume       `json:"enquiries_per_day"`
	TopProducts     []repository.ProductEnquiryCount `json:"top_products"`
}

// DashboardService computes the admin dashboard metrics
type DashboardService interface {
	Metrics(ctx context.Context) (*DashboardMetrics, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	enquiryRepo repository.EnquiryRepository
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(productRepo repository.ProductRepository, enquiryRepo repository.EnquiryRepository) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		enquiryRepo: enquiryRepo,
	}
}

// Metrics gathers counts and the two enquiry aggregates in one call
func (s *dashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	productsCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	enquiriesCount, err := s.enquiryRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count enquiries: %w", err)
	}

	perDay, err := s.enquiryRepo.VolumeByDay(ctx, volumeDays)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate enquiry volume: %w", err)
	}

	topProducts, err := s.enquiryRepo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}

	return &DashboardMetrics{
		ProductsCount:   productsCount,
		EnquiriesCount:  enquiriesCount,
		EnquiriesPerDay: perDay,
		TopProducts:     topProducts,
	}, nil
}
