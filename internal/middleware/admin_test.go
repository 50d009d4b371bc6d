package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubRoleRepository drives the admin gate in tests
type stubRoleRepository struct {
	admins    map[uuid.UUID]bool
	lookupErr error
}

func newStubRoleRepository() *stubRoleRepository {
	return &stubRoleRepository{admins: make(map[uuid.UUID]bool)}
}

func (s *stubRoleRepository) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	return role == domain.RoleAdmin && s.admins[userID], nil
}

func (s *stubRoleRepository) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	s.admins[userID] = true
	return nil
}

func (s *stubRoleRepository) Revoke(ctx context.Context, userID uuid.UUID, role string) error {
	delete(s.admins, userID)
	return nil
}

func adminGateRequest(t *testing.T, roleRepo *stubRoleRepository, userID string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	handlerCalled := false
	gate := RequireAdmin(roleRepo, zap.NewNop())
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	}
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	return w, handlerCalled
}

func TestRequireAdmin_AllowsAdminUser(t *testing.T) {
	roleRepo := newStubRoleRepository()
	adminID := uuid.New()
	roleRepo.admins[adminID] = true

	w, handlerCalled := adminGateRequest(t, roleRepo, adminID.String())

	if !handlerCalled || w.Code != http.StatusOK {
		t.Errorf("admin request: handlerCalled=%v status=%d, want true/200", handlerCalled, w.Code)
	}
}

func TestRequireAdmin_RejectsUserWithoutRole(t *testing.T) {
	roleRepo := newStubRoleRepository()

	w, handlerCalled := adminGateRequest(t, roleRepo, uuid.New().String())

	if handlerCalled {
		t.Error("handler was called for a non-admin user")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdmin_FailsClosedOnLookupError(t *testing.T) {
	roleRepo := newStubRoleRepository()
	adminID := uuid.New()
	roleRepo.admins[adminID] = true
	roleRepo.lookupErr = errors.New("role table unreachable")

	w, handlerCalled := adminGateRequest(t, roleRepo, adminID.String())

	if handlerCalled {
		t.Error("handler was called while the role lookup was failing")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdmin_RejectsMissingUserContext(t *testing.T) {
	w, handlerCalled := adminGateRequest(t, newStubRoleRepository(), "")

	if handlerCalled {
		t.Error("handler was called without an authenticated user")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin_RejectsMalformedUserID(t *testing.T) {
	w, handlerCalled := adminGateRequest(t, newStubRoleRepository(), "not-a-uuid")

	if handlerCalled {
		t.Error("handler was called with a malformed user ID")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
