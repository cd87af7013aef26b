package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsSignVerify(t *testing.T) {
	s := NewSessions("secret-key", time.Hour)

	tok, err := s.Sign("alice")
	require.NoError(t, err)

	username, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = NewSessions("other", time.Hour).Verify(tok)
	assert.Error(t, err)

	_, err = s.Verify(tok + "x")
	assert.Error(t, err)
}

func TestSessionsExpired(t *testing.T) {
	s := NewSessions("secret-key", -time.Minute)

	tok, err := s.Sign("alice")
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err)
}

func TestSessionsCookieRoundTrip(t *testing.T) {
	s := NewSessions("secret-key", time.Hour)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Start(rec, "alice"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	assert.Equal(t, "alice", s.Username(req))

	assert.Equal(t, "", s.Username(httptest.NewRequest(http.MethodGet, "/", nil)))

	rec = httptest.NewRecorder()
	s.Clear(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGateProtect(t *testing.T) {
	s := NewSessions("secret-key", time.Hour)
	g := &Gate{Sessions: s}

	var called bool
	h := g.Protect(func(w http.ResponseWriter, r *http.Request, sess Session) {
		called = true
		assert.Equal(t, "alice", sess.Username)
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))

	tok, err := s.Sign("alice")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})

	rec = httptest.NewRecorder()
	h(rec, req)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
