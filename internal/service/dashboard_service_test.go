package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"

	"github.com/google/uuid"
)

func TestDashboardMetrics_ComposesCountsAndAggregates(t *testing.T) {
	calls := []string{}
	productRepo := newMockProductRepository()
	enquiryRepo := newMockEnquiryRepository(&calls)

	seedProduct(productRepo, "Basmati Rice")
	seedProduct(productRepo, "Turmeric Powder")

	enquiryRepo.enquiries = []*domain.Enquiry{
		{ID: uuid.New(), ProductName: "Basmati Rice", CreatedAt: time.Now()},
		{ID: uuid.New(), ProductName: "Basmati Rice", CreatedAt: time.Now()},
		{ID: uuid.New(), ProductName: "Turmeric Powder", CreatedAt: time.Now()},
	}
	enquiryRepo.volumes = []repository.EnquiryVolume{
		{Date: "2026-08-30", Count: 1},
		{Date: "2026-08-31", Count: 2},
	}
	enquiryRepo.topProducts = []repository.ProductEnquiryCount{
		{Name: "Basmati Rice", Count: 2},
		{Name: "Turmeric Powder", Count: 1},
	}

	svc := NewDashboardService(productRepo, enquiryRepo)

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics returned error: %v", err)
	}

	if metrics.ProductsCount != 2 {
		t.Errorf("products count = %d, want 2", metrics.ProductsCount)
	}
	if metrics.EnquiriesCount != 3 {
		t.Errorf("enquiries count = %d, want 3", metrics.EnquiriesCount)
	}
	if !reflect.DeepEqual(metrics.EnquiriesPerDay, enquiryRepo.volumes) {
		t.Errorf("per-day volumes = %v", metrics.EnquiriesPerDay)
	}
	if !reflect.DeepEqual(metrics.TopProducts, enquiryRepo.topProducts) {
		t.Errorf("top products = %v", metrics.TopProducts)
	}
}

func TestDashboardMetrics_EmptyStateIsZeroesNotErrors(t *testing.T) {
	calls := []string{}
	svc := NewDashboardService(newMockProductRepository(), newMockEnquiryRepository(&calls))

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics returned error on empty data: %v", err)
	}

	if metrics.ProductsCount != 0 || metrics.EnquiriesCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", metrics.ProductsCount, metrics.EnquiriesCount)
	}
}
