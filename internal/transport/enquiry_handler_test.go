package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/events"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// passthroughMiddleware stands in for auth/admin/rate-limit gates in tests
func passthroughMiddleware(next http.Handler) http.Handler {
	return next
}

// mockEnquiryService backs the handler tests. The mutex matters for the
// stream test, where the handler reads the list from its own goroutine.
type mockEnquiryService struct {
	mu        sync.Mutex
	enquiries []*domain.Enquiry
	submitErr error
}

func (m *mockEnquiryService) Submit(ctx context.Context, input service.SubmitEnquiryInput) (*domain.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.submitErr != nil {
		return nil, m.submitErr
	}

	enquiry := &domain.Enquiry{
		ID:          uuid.New(),
		UserName:    input.Name,
		UserEmail:   input.Email,
		ProductID:   input.ProductID,
		ProductName: "Basmati Rice",
		Message:     input.Message,
		CreatedAt:   time.Now(),
	}
	m.enquiries = append(m.enquiries, enquiry)
	return enquiry, nil
}

func (m *mockEnquiryService) List(ctx context.Context) ([]*domain.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listed := make([]*domain.Enquiry, len(m.enquiries))
	copy(listed, m.enquiries)
	return listed, nil
}

func (m *mockEnquiryService) add(enquiry *domain.Enquiry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enquiries = append(m.enquiries, enquiry)
}

func newEnquiryRouter(svc service.EnquiryService, bus *events.Bus) chi.Router {
	router := chi.NewRouter()
	handler := NewEnquiryHandler(svc, bus, zap.NewNop())
	handler.RegisterRoutes(router, passthroughMiddleware, passthroughMiddleware, passthroughMiddleware)
	return router
}

func TestSubmitEnquiry_Success(t *testing.T) {
	svc := &mockEnquiryService{}
	router := newEnquiryRouter(svc, events.NewBus())

	body, _ := json.Marshal(map[string]string{
		"name":       "Asha Patel",
		"email":      "asha@example.com",
		"message":    "Bulk pricing for 10 tonnes?",
		"product_id": uuid.New().String(),
	})

	req := httptest.NewRequest("POST", "/api/enquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created domain.Enquiry
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ProductName == "" {
		t.Error("response is missing the product name snapshot")
	}
}

func TestSubmitEnquiry_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "missing name",
			body: map[string]string{"email": "a@b.com", "message": "hi", "product_id": uuid.New().String()},
		},
		{
			name: "bad email",
			body: map[string]string{"name": "A", "email": "not-an-email", "message": "hi", "product_id": uuid.New().String()},
		},
		{
			name: "bad product id",
			body: map[string]string{"name": "A", "email": "a@b.com", "message": "hi", "product_id": "nope"},
		},
		{
			name: "message too long",
			body: map[string]string{"name": "A", "email": "a@b.com", "message": strings.Repeat("x", 1001), "product_id": uuid.New().String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEnquiryService{}
			router := newEnquiryRouter(svc, events.NewBus())

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/api/enquiries", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(svc.enquiries) != 0 {
				t.Error("invalid submission reached the service")
			}
		})
	}
}

func TestSubmitEnquiry_UnknownProduct(t *testing.T) {
	svc := &mockEnquiryService{submitErr: repository.ErrProductNotFound}
	router := newEnquiryRouter(svc, events.NewBus())

	body, _ := json.Marshal(map[string]string{
		"name":       "Asha Patel",
		"email":      "asha@example.com",
		"message":    "Still available?",
		"product_id": uuid.New().String(),
	})

	req := httptest.NewRequest("POST", "/api/enquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// sseRecorder captures a streaming response and signals every flush
type sseRecorder struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	header  http.Header
	flushed chan struct{}
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{
		header:  make(http.Header),
		flushed: make(chan struct{}, 16),
	}
}

func (r *sseRecorder) Header() http.Header { return r.header }

func (r *sseRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

func (r *sseRecorder) WriteHeader(statusCode int) {}

func (r *sseRecorder) Flush() {
	r.flushed <- struct{}{}
}

func (r *sseRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

func waitForFlush(t *testing.T, rec *sseRecorder) {
	t.Helper()
	select {
	case <-rec.flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a stream flush")
	}
}

func TestStream_PushesSnapshotAndRefreshes(t *testing.T) {
	svc := &mockEnquiryService{}
	bus := events.NewBus()
	handler := NewEnquiryHandler(svc, bus, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/admin/enquiries/stream", nil).WithContext(ctx)
	rec := newSSERecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(rec, req)
		close(done)
	}()

	// Initial snapshot on connect
	waitForFlush(t, rec)

	// A new insert triggers a full-list refresh
	enquiry := &domain.Enquiry{
		ID:          uuid.New(),
		UserName:    "Ravi",
		UserEmail:   "ravi@example.com",
		ProductName: "Turmeric Powder",
		Message:     "Is this organic?",
		CreatedAt:   time.Now(),
	}
	svc.add(enquiry)
	bus.PublishEnquiryCreated(enquiry)

	waitForFlush(t, rec)

	// Client disconnect ends the stream
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after client disconnect")
	}

	body := rec.body()
	if got := strings.Count(body, "event: enquiries"); got < 2 {
		t.Errorf("stream wrote %d enquiries events, want at least 2:\n%s", got, body)
	}
	if !strings.Contains(body, "Turmeric Powder") {
		t.Error("refresh event does not contain the new enquiry")
	}
	if rec.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", rec.Header().Get("Content-Type"))
	}
}
