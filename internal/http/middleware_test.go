package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/logging"
)

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("rejects requests without valid session tokens", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name           string
			cookieToken    *http.Cookie
			headerToken    string
			lookupError    error
			expectedStatus int
			expectedCode   string
		}{
			{
				name:           "missing credentials",
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "empty bearer header",
				headerToken:    "Bearer   ",
				expectedStatus: http.StatusUnauthorized,
			},
			{
				name:           "revoked session",
				cookieToken:    &http.Cookie{Name: "session_token", Value: "revoked-token"},
				lookupError:    application.ErrUnauthorized,
				expectedStatus: http.StatusUnauthorized,
				expectedCode:   "AUTH_SESSION_INVALID",
			},
			{
				name:           "validator failure",
				headerToken:    "Bearer transient-error",
				lookupError:    errors.New("session store unavailable"),
				expectedStatus: http.StatusInternalServerError,
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				req := httptest.NewRequest(http.MethodGet, "/protected", nil)
				if tc.cookieToken != nil {
					req.AddCookie(tc.cookieToken)
				}
				if tc.headerToken != "" {
					req.Header.Set("Authorization", tc.headerToken)
				}
				recorder := httptest.NewRecorder()

				validator := fakeSessionValidator{err: tc.lookupError}
				handler := RequireSession(validator, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("next handler should not be called when authentication fails")
				}))
				handler.ServeHTTP(recorder, req)

				if recorder.Code != tc.expectedStatus {
					t.Fatalf("expected status %d, got %d", tc.expectedStatus, recorder.Code)
				}
				var body errorResponse
				if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Message == "" {
					t.Fatal("expected a localized message")
				}
				if body.ErrorCode != tc.expectedCode {
					t.Fatalf("expected error code %q, got %q", tc.expectedCode, body.ErrorCode)
				}
			})
		}
	})

	t.Run("attaches authenticated principal to request context", func(t *testing.T) {
		t.Parallel()

		principal := application.Principal{Email: "anna.lind@crm.se"}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "valid-token"})
		recorder := httptest.NewRecorder()

		validator := fakeSessionValidator{principal: principal}
		var captured application.Principal
		handler := RequireSession(validator, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				t.Fatal("expected principal in request context")
			}
			captured = p
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		if captured != principal {
			t.Fatalf("expected principal %+v, got %+v", principal, captured)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("echoes the incoming request id", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		recorder := httptest.NewRecorder()

		var sawLogger bool
		handler := RequestLogger(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusTeapot)
		}))
		handler.ServeHTTP(recorder, req)

		if got := recorder.Header().Get(middleware.RequestIDHeader); got != "req-42" {
			t.Fatalf("expected request id req-42, got %q", got)
		}
		if !sawLogger {
			t.Fatal("expected request logger in context")
		}
		if recorder.Code != http.StatusTeapot {
			t.Fatalf("expected status to pass through, got %d", recorder.Code)
		}
	})

	t.Run("generates a request id when none is sent", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		RequestLogger(nil)(http.HandlerFunc(Health)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if recorder.Header().Get(middleware.RequestIDHeader) == "" {
			t.Fatal("expected generated request id")
		}
	})
}

type fakeSessionValidator struct {
	principal application.Principal
	err       error
}

func (f fakeSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	return f.principal, f.err
}
