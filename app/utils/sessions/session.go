package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "marketplace-session"

	userIDSessionKey = "userID"
	roleSessionKey   = "role"
)

type SessionStore interface {
	GetUser(r *http.Request) (userID, role string)
	SetUser(w http.ResponseWriter, r *http.Request, userID, role string) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

// NewCookieSessionStore takes the authentication key first and an optional
// encryption key, as securecookie expects them.
func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// a tampered or stale cookie yields a fresh session
		log.Printf("CookieSessionStore: discarding unreadable session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetUser(r *http.Request) (string, string) {
	session := c.getSession(r)
	userID, _ := session.Values[userIDSessionKey].(string)
	role, _ := session.Values[roleSessionKey].(string)
	return userID, role
}

func (c *CookieSessionStore) SetUser(w http.ResponseWriter, r *http.Request, userID, role string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	session.Values[roleSessionKey] = role
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
