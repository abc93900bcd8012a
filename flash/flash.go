// Package flash implements one-time, severity-tagged notices shown on the
// next rendered page only.
//
// Flashes ride in a cookie session and are consumed exactly once: Pop drains
// the pending messages and saves the emptied session in the same response.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SeveritySuccess = "success"
	SeverityError   = "error"

	sessionName = "todoweb-session"
)

// Flash is a single pending notice.
type Flash struct {
	Severity string
	Text     string
}

func init() {
	gob.Register(Flash{})
}

// Store adds and drains flash messages for a request.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore creates a flash store whose session cookies are signed with the
// given secret key.
func NewStore(secret string) *Store {
	return &Store{cookies: sessions.NewCookieStore([]byte(secret))}
}

// Add queues a flash message to be shown on the next rendered page.
func (s *Store) Add(res http.ResponseWriter, req *http.Request, severity, text string) {
	session, _ := s.cookies.Get(req, sessionName)
	session.AddFlash(Flash{Severity: severity, Text: text})
	session.Save(req, res)
}

// Pop drains all pending flash messages and persists the now-empty session.
// A message returned by Pop is never returned again.
func (s *Store) Pop(res http.ResponseWriter, req *http.Request) []Flash {
	session, _ := s.cookies.Get(req, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(req, res)
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
