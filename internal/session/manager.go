package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
)

// CookieName is the session id cookie.
const CookieName = "bstore_session"

// Manager resolves the session for a request and persists it once the
// request marked it dirty.
type Manager struct {
	store        Store
	cookieMaxAge int
	secure       bool
}

// NewManager creates a Manager on top of the given store. cookieMaxAge
// is in seconds; secure controls the cookie Secure attribute.
func NewManager(store Store, cookieMaxAge int, secure bool) *Manager {
	return &Manager{store: store, cookieMaxAge: cookieMaxAge, secure: secure}
}

// Session is the per-request view of the stored session data. Mutate
// Data and call MarkDirty; the manager persists dirty sessions only.
type Session struct {
	id    string
	fresh bool
	dirty bool
	Data  Data
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// MarkDirty flags the session for persistence at the end of the request.
func (s *Session) MarkDirty() { s.dirty = true }

// Dirty reports whether the session has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Data.Flashes = append(s.Data.Flashes, msg)
	s.dirty = true
}

// ConsumeFlashes returns queued messages and removes them.
func (s *Session) ConsumeFlashes() []string {
	if len(s.Data.Flashes) == 0 {
		return nil
	}
	flashes := s.Data.Flashes
	s.Data.Flashes = nil
	s.dirty = true
	return flashes
}

// SetUser binds the logged-in user to the session.
func (s *Session) SetUser(id int64) {
	s.Data.UserID = &id
	s.dirty = true
}

// ClearUser removes the identity but keeps the cart, matching the
// logout behavior of dropping only the user id.
func (s *Session) ClearUser() {
	if s.Data.UserID == nil {
		return
	}
	s.Data.UserID = nil
	s.dirty = true
}

// UserID returns the logged-in user id, or false when anonymous.
func (s *Session) UserID() (int64, bool) {
	if s.Data.UserID == nil {
		return 0, false
	}
	return *s.Data.UserID, true
}

// Load resolves the session for the request. A missing, unknown or
// unreadable cookie yields a fresh empty session with a new id.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		data, err := m.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return &Session{id: cookie.Value, Data: *data}, nil
		}
	}

	sid, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("issue session id: %w", err)
	}
	return &Session{id: sid, fresh: true}, nil
}

// IssueCookie sets the session cookie for freshly created sessions.
// Must run before the response body is written.
func (m *Manager) IssueCookie(w http.ResponseWriter, s *Session) {
	if !s.fresh {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.id,
		Path:     "/",
		MaxAge:   m.cookieMaxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.fresh = false
}

// Persist writes the session to the store if it is dirty.
func (m *Manager) Persist(ctx context.Context, s *Session) error {
	if !s.dirty {
		return nil
	}
	if err := m.store.Save(ctx, s.id, &s.Data); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
