package auth

import (
	"net/http"
)

const LoginPath = "/login"

// SessionHandler is a handler that receives the caller's session
// explicitly instead of digging it out of the request context.
type SessionHandler func(w http.ResponseWriter, r *http.Request, s Session)

type Gate struct {
	Sessions *Sessions
	Users    *Users
}

func (g *Gate) Session(r *http.Request) Session {
	return NewSession(g.Sessions.Username(r), g.Users)
}

// Protect runs h only for requests carrying a session; everything else
// is redirected to the login page before any of h executes.
func (g *Gate) Protect(h SessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := g.Session(r)
		if !s.Authenticated() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		h(w, r, s)
	}
}
