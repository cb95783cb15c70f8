package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

type stubAuthService struct {
	issueFn     func(ctx context.Context, username, password string) (*domain.IssuedToken, error)
	authorizeFn func(ctx context.Context, token string) (*domain.Principal, error)
}

func (s *stubAuthService) IssueToken(ctx context.Context, username, password string) (*domain.IssuedToken, error) {
	return s.issueFn(ctx, username, password)
}

func (s *stubAuthService) Authorize(ctx context.Context, token string) (*domain.Principal, error) {
	return s.authorizeFn(ctx, token)
}

func TestAuthHandler_Token_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		issueFn: func(ctx context.Context, username, password string) (*domain.IssuedToken, error) {
			if username != "alice" || password != "pwd1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.IssuedToken{Token: "tok123", UID: 501, Expires: 1700000900}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth("alice", "pwd1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != 200.0 || resp["token"] != "tok123" || resp["uid"] != 501.0 || resp["expires"] != 1700000900.0 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		issueFn: func(ctx context.Context, username, password string) (*domain.IssuedToken, error) {
			return nil, domain.ErrBadCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth("alice", "nope")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Token(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != http.StatusUnauthorized || resp.Error != "bad user credentials" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Token_MissingHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		issueFn: func(ctx context.Context, username, password string) (*domain.IssuedToken, error) {
			if username != "" || password != "" {
				t.Fatalf("expected empty credentials, got %q %q", username, password)
			}
			return nil, domain.ErrBadCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Token(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
