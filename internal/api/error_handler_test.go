package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/boom", func(echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not the JSON envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "validation",
			err:     &domain.ValidationError{Kind: domain.KindEmployees, Missing: []string{"employee_ID", "name"}},
			code:    http.StatusBadRequest,
			message: "missing required fields: employee_ID, name",
		},
		{
			name:    "not found",
			err:     &domain.NotFoundError{Resource: "employee", Key: int64(7)},
			code:    http.StatusNotFound,
			message: "employee 7 not found",
		},
		{
			name:    "empty list",
			err:     &domain.NoRecordsError{Kind: domain.KindEmployees},
			code:    http.StatusNotFound,
			message: "no employees found",
		},
		{
			name:    "persistence",
			err:     &domain.PersistenceError{Msg: "failed to retrieve the added record"},
			code:    http.StatusInternalServerError,
			message: "failed to retrieve the added record",
		},
		{
			name:    "invalid token",
			err:     domain.ErrInvalidToken,
			code:    http.StatusUnauthorized,
			message: "invalid token",
		},
		{
			name:    "invalid credentials",
			err:     domain.ErrInvalidCredentials,
			code:    http.StatusUnauthorized,
			message: "invalid credentials",
		},
		{
			name:    "throttled",
			err:     domain.ErrTooManyAttempts,
			code:    http.StatusTooManyRequests,
			message: "too many login attempts",
		},
		{
			name:    "forbidden",
			err:     domain.ErrForbidden,
			code:    http.StatusForbidden,
			message: "access forbidden",
		},
		{
			name:    "duplicate user",
			err:     domain.ErrUserExists,
			code:    http.StatusConflict,
			message: "user already exists",
		},
		{
			name:    "unknown user",
			err:     domain.ErrUserNotFound,
			code:    http.StatusNotFound,
			message: "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if body["error"] != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, body["error"])
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "missing authorization header" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := serveError(t, errors.New("connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// The real cause stays in the logs.
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}
