package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "murmur_session"

// Sessions keeps the logged-in username in a cookie signed with HS256.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

func (s *Sessions) Sign(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *Sessions) Verify(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid session")
	}
	if claims.Subject == "" {
		return "", errors.New("missing username")
	}
	return claims.Subject, nil
}

// Start sets the session cookie for username.
func (s *Sessions) Start(w http.ResponseWriter, username string) error {
	token, err := s.Sign(username)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	})
	return nil
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Username returns the username carried by the request's cookie, or ""
// when there is no valid session.
func (s *Sessions) Username(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	username, err := s.Verify(c.Value)
	if err != nil {
		return ""
	}
	return username
}

// Session is the per-request identity handed to protected handlers.
type Session struct {
	Username string
	users    *Users
}

func NewSession(username string, users *Users) Session {
	return Session{Username: username, users: users}
}

func (s Session) Authenticated() bool { return s.Username != "" }

// UserID resolves the session username to its row id. It returns
// ErrUserNotFound when there is no session or the account is gone;
// callers treat both as unauthenticated.
func (s Session) UserID(ctx context.Context) (uint64, error) {
	if !s.Authenticated() || s.users == nil {
		return 0, ErrUserNotFound
	}
	return s.users.IDByUsername(ctx, s.Username)
}
