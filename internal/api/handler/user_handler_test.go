package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/api/middleware"
	"github.com/brightpixel/rolodex/internal/core/domain"
)

type stubDirectoryService struct {
	listFn   func(ctx context.Context, p *domain.Principal) ([]domain.Entry, error)
	getFn    func(ctx context.Context, p *domain.Principal, uid int) (domain.Entry, error)
	updateFn func(ctx context.Context, p *domain.Principal, uid int, body []byte) error
}

func (s *stubDirectoryService) List(ctx context.Context, p *domain.Principal) ([]domain.Entry, error) {
	return s.listFn(ctx, p)
}

func (s *stubDirectoryService) Get(ctx context.Context, p *domain.Principal, uid int) (domain.Entry, error) {
	return s.getFn(ctx, p, uid)
}

func (s *stubDirectoryService) Update(ctx context.Context, p *domain.Principal, uid int, body []byte) error {
	return s.updateFn(ctx, p, uid, body)
}

var alice = &domain.Principal{UID: 501, Username: "alice"}

func newUserContext(method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, alice)
	if uid != "" {
		c.SetParamNames("uid")
		c.SetParamValues(uid)
	}
	return c, rec
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubDirectoryService{
		listFn: func(ctx context.Context, p *domain.Principal) ([]domain.Entry, error) {
			if p != alice {
				t.Fatalf("unexpected principal: %+v", p)
			}
			return []domain.Entry{{"uid": 1001, "username": "aboss"}, {"uid": 501, "username": "alice"}}, nil
		},
	}
	handler := NewUserHandler(stub)
	c, rec := newUserContext(http.MethodGet, "/users", "", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status int              `json:"status"`
		Users  []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != 200 || len(resp.Users) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_List_MissingPrincipal(t *testing.T) {
	handler := NewUserHandler(&stubDirectoryService{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	stub := &stubDirectoryService{
		getFn: func(ctx context.Context, p *domain.Principal, uid int) (domain.Entry, error) {
			if uid == 501 {
				return domain.Entry{"uid": 501, "username": "alice", "notes": "n"}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newUserContext(http.MethodGet, "/users/501", "", "501")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Status int            `json:"status"`
		User   map[string]any `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User["username"] != "alice" || resp.User["notes"] != "n" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	for _, uid := range []string{"9999", "abc"} {
		c, rec := newUserContext(http.MethodGet, "/users/"+uid, "", uid)
		_ = handler.Get(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("uid %s: expected 404, got %d", uid, rec.Code)
		}
	}
}

func TestUserHandler_Update_Statuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"not modified", domain.ErrNotModified, http.StatusNotModified},
		{"bad attributes", domain.ErrBadAttributes, http.StatusBadRequest},
		{"invalid json", domain.ErrInvalidJSON, http.StatusBadRequest},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not implemented", domain.ErrNotImplemented, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubDirectoryService{
				updateFn: func(ctx context.Context, p *domain.Principal, uid int, body []byte) error {
					if uid != 501 || string(body) != `{"position":"Admin"}` {
						t.Fatalf("unexpected args: %d %s", uid, body)
					}
					return tc.err
				},
			}
			handler := NewUserHandler(stub)
			c, rec := newUserContext(http.MethodPut, "/users/501", `{"position":"Admin"}`, "501")

			if err := handler.Update(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if tc.want == http.StatusNotModified && rec.Body.Len() != 0 {
				t.Fatalf("304 must not carry a body: %q", rec.Body.String())
			}
			if tc.err != nil && tc.want != http.StatusNotModified {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if resp.Error != tc.err.Error() || resp.Status != tc.want {
					t.Fatalf("unexpected payload: %+v", resp)
				}
			}
		})
	}
}

func TestUserHandler_Update_UnexpectedErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	stub := &stubDirectoryService{
		updateFn: func(ctx context.Context, p *domain.Principal, uid int, body []byte) error {
			return boom
		},
	}
	handler := NewUserHandler(stub)
	c, _ := newUserContext(http.MethodPut, "/users/501", `{"name":"x"}`, "501")

	if err := handler.Update(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to reach the central handler, got %v", err)
	}
}
