// Package session keeps per-viewer state keyed by a cookie-borne id. State is
// never shared between viewers.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "stampcat_session"

	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 24 * time.Hour
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists one value of type T per session id.
type Store[T any] interface {
	// Get returns the value for id, or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Save creates or replaces the value for id and refreshes its TTL.
	Save(ctx context.Context, id string, value T) error

	// Delete removes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// IDFromRequest returns the session id carried by r, if it is well formed.
func IDFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// SetCookie attaches the session id to the response.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}
