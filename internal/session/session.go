// internal/session/session.go
//
// Onboard – Session store.
//
// Context
//   Each browser gets its own signup form.  The store maps an opaque cookie
//   value to a *form.Form held in an LRU, so memory stays bounded no matter
//   how many visitors arrive.  Evicted sessions simply start over with an
//   empty form on their next request.  Nothing is persisted.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/yanizio/onboard/internal/cache"
	"github.com/yanizio/onboard/internal/form"
	"github.com/yanizio/onboard/internal/metrics"
)

// DefaultCookieName is used when the store is built with an empty name.
const DefaultCookieName = "onboard_session"

// Store hands out one *form.Form per browser session.
type Store struct {
	cookieName string
	forms      *cache.LRU[string, *form.Form]
	newForm    func() *form.Form
}

// NewStore returns a store holding at most capacity sessions.  newForm
// builds the form for a fresh session.
func NewStore(capacity int, cookieName string, newForm func() *form.Form) *Store {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	forms := cache.New[string, *form.Form](capacity)
	forms.OnEvict = func(string, *form.Form) {
		metrics.SessionsEvictedTotal.Inc()
	}
	return &Store{cookieName: cookieName, forms: forms, newForm: newForm}
}

// Form returns the session ID and form for r, creating both (and setting
// the cookie on w) when the request carries no live session.
func (s *Store) Form(w http.ResponseWriter, r *http.Request) (string, *form.Form) {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		if f, ok := s.forms.Get(c.Value); ok {
			return c.Value, f
		}
	}

	id := newID()
	f, _ := s.forms.GetOrAdd(id, s.newForm)
	metrics.SessionsActive.Set(float64(s.forms.Len()))

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS when served over HTTPS
		SameSite: http.SameSiteLaxMode,
	})
	return id, f
}

// Lookup returns the form of an existing session without creating one.
func (s *Store) Lookup(r *http.Request) (string, *form.Form, bool) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return "", nil, false
	}
	f, ok := s.forms.Get(c.Value)
	return c.Value, f, ok
}

// Len reports how many sessions are held.
func (s *Store) Len() int { return s.forms.Len() }

// newID returns 128 random bits, base64url encoded.
func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
