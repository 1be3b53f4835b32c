package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *CookieSessionStore {
	return NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
}

func TestSetUserRoundTrip(t *testing.T) {
	store := newStore()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, store.SetUser(rec, req, "user-1", "seller"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	next.AddCookie(cookies[0])
	userID, role := store.GetUser(next)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "seller", role)
}

func TestGetUserIgnoresForeignCookie(t *testing.T) {
	issuer := newStore()
	rec := httptest.NewRecorder()
	require.NoError(t, issuer.SetUser(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1", "admin"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	userID, role := newStore().GetUser(req)
	assert.Empty(t, userID)
	assert.Empty(t, role)
}

func TestClearSessionExpiresCookie(t *testing.T) {
	store := newStore()
	rec := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}
