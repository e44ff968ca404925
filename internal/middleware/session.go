package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie name for owner and guest sessions
const SessionName = "registry-session"

type contextKey string

const userIDKey contextKey = "user_id"

// SessionMiddleware manages cookie sessions for owner login and guest carts
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates session middleware with the given store
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Store exposes the underlying session store for handlers that need direct
// access, such as the cart handlers.
func (m *SessionMiddleware) Store() sessions.Store {
	return m.store
}

// LoadUser resolves the session and, when an owner is logged in, places
// their user id on the request context.
func (m *SessionMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// Corrupt cookie: continue with a fresh session.
			next.ServeHTTP(w, r)
			return
		}

		if userID, ok := session.Values["user_id"].(string); ok && userID != "" {
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a logged-in owner. API requests get
// a JSON 401, page requests are redirected to the login page.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			if isAPIRequest(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login records the owner id on the session cookie
func (m *SessionMiddleware) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// Logout clears the owner id from the session cookie
func (m *SessionMiddleware) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// UserIDFromContext returns the logged-in owner id, or "" for guests
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// WithUserID returns a context carrying the given owner id. Used by tests
// and internal calls.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
