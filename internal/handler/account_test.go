package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/service"
)

// newAccountFixture registers one account and returns a handler plus the
// principal to inject into request contexts.
func newAccountFixture(t *testing.T) (*AccountHandler, *service.CredentialService, *model.Principal) {
	t.Helper()

	svc := service.NewCredentialService(
		newMemUsers(),
		newMemSessions(),
		nil,
		[]byte("handler-test-secret"),
		time.Hour,
		24*time.Hour,
		nil,
	)

	session, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
		Confirm:  "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	return NewAccountHandler(svc, testLogger(), false), svc, &session.Principal
}

func withPrincipal(r *http.Request, p *model.Principal) *http.Request {
	return r.WithContext(auth.ContextWithPrincipal(r.Context(), p))
}

func TestAccountHandler_Get(t *testing.T) {
	h, _, principal := newAccountFixture(t)

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/account", nil), principal)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["email"] != "alice@example.com" {
		t.Errorf("unexpected email: %v", response["email"])
	}
}

func TestAccountHandler_ChangeEmail(t *testing.T) {
	h, svc, principal := newAccountFixture(t)

	body := jsonBody(t, map[string]string{"email": "alice2@example.com"})
	req := withPrincipal(httptest.NewRequest(http.MethodPatch, "/api/v1/account/email", body), principal)
	rec := httptest.NewRecorder()
	h.ChangeEmail(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// Cookies are cleared so the client re-authenticates.
	c := sessionCookie(rec)
	if c == nil || c.MaxAge != -1 {
		t.Error("expected the session cookie to be expired")
	}

	if _, err := svc.Authenticate(context.Background(), service.AuthenticateInput{
		Email:    "alice2@example.com",
		Password: "Str0ng!pass",
	}); err != nil {
		t.Fatalf("expected login under the new email, got %v", err)
	}
}

func TestAccountHandler_ChangeEmail_InUse(t *testing.T) {
	h, svc, principal := newAccountFixture(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "bob@example.com",
		Password: "Str0ng!pass",
		Confirm:  "Str0ng!pass",
	}); err != nil {
		t.Fatalf("register second account: %v", err)
	}

	body := jsonBody(t, map[string]string{"email": "bob@example.com"})
	req := withPrincipal(httptest.NewRequest(http.MethodPatch, "/api/v1/account/email", body), principal)
	rec := httptest.NewRecorder()
	h.ChangeEmail(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	h, svc, principal := newAccountFixture(t)

	t.Run("wrong current", func(t *testing.T) {
		body := jsonBody(t, map[string]string{
			"current":  "Wr0ng!pass!",
			"password": "N3w!passwd",
			"confirm":  "N3w!passwd",
		})
		req := withPrincipal(httptest.NewRequest(http.MethodPatch, "/api/v1/account/password", body), principal)
		rec := httptest.NewRecorder()
		h.ChangePassword(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body := jsonBody(t, map[string]string{
			"current":  "Str0ng!pass",
			"password": "N3w!passwd",
			"confirm":  "N3w!passwd",
		})
		req := withPrincipal(httptest.NewRequest(http.MethodPatch, "/api/v1/account/password", body), principal)
		rec := httptest.NewRecorder()
		h.ChangePassword(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
		}

		if _, err := svc.Authenticate(context.Background(), service.AuthenticateInput{
			Email:    "alice@example.com",
			Password: "N3w!passwd",
		}); err != nil {
			t.Fatalf("expected login under the new password, got %v", err)
		}
	})
}

func TestAccountHandler_Delete(t *testing.T) {
	h, svc, principal := newAccountFixture(t)

	req := withPrincipal(httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil), principal)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	if _, err := svc.Authenticate(context.Background(), service.AuthenticateInput{
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
	}); err == nil {
		t.Fatal("expected login to fail after deletion")
	}
}
