package http

import (
	"net/http"

	"murmur/internal/auth"
	"murmur/internal/config"
	"murmur/internal/http/handler"
	mw "murmur/internal/http/middleware"
	"murmur/internal/note"
	"murmur/internal/post"
	"murmur/internal/view"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, log *zap.Logger, views view.Renderer) http.Handler {
	r := chi.NewRouter()
	metrics := mw.NewMetrics("murmur")

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.AccessLog(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS(cfg))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	users := &auth.Users{DB: db, Passwords: auth.PasswordsFor(cfg.PasswordHashing)}
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	gate := &auth.Gate{Sessions: sessions, Users: users}
	base := handler.Responder{Views: views, Log: log}

	ah := &handler.AuthHandler{Responder: base, Svc: &auth.Service{Users: users}, Sessions: sessions}
	r.Get("/register", ah.RegisterForm)
	r.Post("/register", ah.Register)
	r.Get("/login", ah.LoginForm)
	r.Post("/login", ah.Login)
	r.Get("/logout", ah.Logout)
	r.Post("/account/delete", gate.Protect(ah.DeleteAccount))

	ph := &handler.PostHandler{Responder: base, Posts: &post.Store{DB: db}}
	r.Get("/", gate.Protect(ph.List))
	r.Get("/user-posts", gate.Protect(ph.Mine))

	r.Route("/posts", func(r chi.Router) {
		r.Get("/add", gate.Protect(ph.NewForm))
		r.Post("/add", gate.Protect(ph.Create))

		r.Get("/{id:[0-9]+}", gate.Protect(ph.Show))
		r.Get("/{id:[0-9]+}/update", gate.Protect(ph.EditForm))
		r.Post("/{id:[0-9]+}/update", gate.Protect(ph.Update))
		r.Post("/{id:[0-9]+}/delete", gate.Protect(ph.Delete))
		r.Post("/{id:[0-9]+}/like", gate.Protect(ph.Like))
		r.Post("/{id:[0-9]+}/comment", gate.Protect(ph.Comment))
	})

	nh := &handler.NoteHandler{Responder: base, Notes: &note.Store{DB: db}}
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", gate.Protect(nh.List))
		r.Get("/add", gate.Protect(nh.NewForm))
		r.Post("/add", gate.Protect(nh.Create))

		r.Get("/{id:[0-9]+}", gate.Protect(nh.Show))
		r.Get("/{id:[0-9]+}/update", gate.Protect(nh.EditForm))
		r.Post("/{id:[0-9]+}/update", gate.Protect(nh.Update))
		r.Post("/{id:[0-9]+}/delete", gate.Protect(nh.Delete))
	})

	return r
}
