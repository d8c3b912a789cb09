package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

type stubAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthService) Register(_ context.Context, username, _, role string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil {
		return s.user, nil
	}
	return &domain.User{ID: 1, Username: username, Role: domain.Role(role)}, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func newAuthContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newAuthContext(t, "/register", `{"username":"alice","password":"pass123","role":"admin"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newAuthContext(t, "/register", `{"username":"alice"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newAuthContext(t, "/register", `{not json`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrUserExists})
	c, _ := newAuthContext(t, "/register", `{"username":"alice","password":"pass","role":"user"}`)

	// Domain errors pass through untouched for the central error handler.
	if err := h.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{token: "signed.jwt.token"})
	c, rec := newAuthContext(t, "/login", `{"username":"alice","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("unexpected token: %q", resp["token"])
	}
	if len(resp) != 1 {
		t.Fatalf("login response carries extra fields: %v", resp)
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})
	c, _ := newAuthContext(t, "/login", `{"username":"alice","password":"wrong"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
