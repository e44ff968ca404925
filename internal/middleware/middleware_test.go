package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
)

func TestErrorHandlingMiddleware_RecoversPanic(t *testing.T) {
	handler := ErrorHandlingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("POST", "/api/create-payment-preference", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error for API path, got %q", ct)
	}
	body := rec.Body.String()
	if body == "" || body == "boom" {
		t.Errorf("panic detail must not leak, got %q", body)
	}
}

func TestLoginRateLimit(t *testing.T) {
	limiter := NewLoginRateLimiter(2, time.Minute)
	handler := LoginRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d should pass, got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", rec.Code)
	}

	// GET requests are never limited.
	req = httptest.NewRequest("GET", "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET must not be rate limited, got %d", rec.Code)
	}
}

func TestSessionMiddleware_LoginAndRequireAuth(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))
	m := NewSessionMiddleware(store)

	// Log in and capture the cookie.
	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest("POST", "/login", nil)
	if err := m.Login(loginRec, loginReq, "owner-1"); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}
	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	var gotUserID string
	protected := m.LoadUser(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
	})))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", rec.Code)
	}
	if gotUserID != "owner-1" {
		t.Errorf("expected owner-1 in context, got %q", gotUserID)
	}
}

func TestSessionMiddleware_RequireAuthWithoutSession(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))
	m := NewSessionMiddleware(store)

	protected := m.LoadUser(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a session")
	})))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect to login, got %d", rec.Code)
	}

	// API requests get a JSON 401 instead of a redirect.
	apiReq := httptest.NewRequest("GET", "/api/get-mp-balance", nil)
	apiRec := httptest.NewRecorder()
	protected.ServeHTTP(apiRec, apiReq)
	if apiRec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for API request, got %d", apiRec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	if ip := getClientIP(req); ip != "192.168.1.5" {
		t.Errorf("expected 192.168.1.5, got %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if ip := getClientIP(req); ip != "203.0.113.7" {
		t.Errorf("expected forwarded IP, got %q", ip)
	}
}
