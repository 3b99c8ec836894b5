package server

import (
	"database/sql"
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	authn "lessonhub/internal/auth"
	"lessonhub/internal/config"
	"lessonhub/internal/handlers"
	authh "lessonhub/internal/handlers/auth"
	"lessonhub/internal/handlers/lesson"
	"lessonhub/internal/handlers/pages"
	"lessonhub/internal/handlers/problem"
	"lessonhub/internal/handlers/review"
	"lessonhub/internal/handlers/session"
	"lessonhub/internal/mail"
	"lessonhub/internal/middleware"
)

type Server struct {
	Addr     string
	DB       *sql.DB
	Cfg      *config.Config
	Reviewer review.Reviewer
	Mailer   mail.Sender
	Log      *logrus.Logger
}

func NewServer(addr string, db *sql.DB, cfg *config.Config, reviewer review.Reviewer, mailer mail.Sender, log *logrus.Logger) *Server {
	return &Server{
		Addr:     addr,
		DB:       db,
		Cfg:      cfg,
		Reviewer: reviewer,
		Mailer:   mailer,
		Log:      log,
	}
}

func HandlerFunc(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

// Router builds the route table. Every route declares public or protected
// here, at registration; nothing is matched by path string later.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// middlewares
	r.Use(logger.Logger("router", s.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	verifier := authn.NewVerifier(s.DB, s.Cfg.JWTSecret)
	pg := &pages.Handler{Dir: s.Cfg.StaticDir}

	// public pages
	r.Get("/login", pg.Serve("login.html"))
	r.Get("/register", pg.Serve("register.html"))
	r.Get("/forgot-password", pg.Serve("forgot-password.html"))
	r.Get("/reset-password/{token}", pg.Serve("reset-password.html"))
	r.Handle("/static/*", pg.FileServer())
	r.Get("/health", handlers.HealthCheck)

	// the landing page needs a verified session; browsers only send the cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(verifier, authn.SourceCookie, middleware.RedirectTo("/login")))
		r.Get("/", pg.Serve("index.html"))
	})

	// account routes (public)
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", HandlerFunc(&authh.RegisterHandler{
			DB:      s.DB,
			Secret:  s.Cfg.JWTSecret,
			Mailer:  s.Mailer,
			BaseURL: s.Cfg.BaseURL,
		}))
		r.Get("/verify-email/{token}", HandlerFunc(&authh.VerifyEmailHandler{
			DB:     s.DB,
			Secret: s.Cfg.JWTSecret,
		}))
		r.Post("/login", HandlerFunc(&authh.LoginHandler{
			DB:            s.DB,
			Secret:        s.Cfg.JWTSecret,
			SessionTTLHrs: s.Cfg.SessionTTLHrs,
		}))
		r.Post("/forgot-password", HandlerFunc(&authh.ForgotPasswordHandler{
			DB:      s.DB,
			Mailer:  s.Mailer,
			BaseURL: s.Cfg.BaseURL,
		}))
		r.Post("/reset-password/{token}", HandlerFunc(&authh.ResetPasswordHandler{DB: s.DB}))

		// verify-session answers 200/401 itself rather than using the guard
		r.Post("/verify-session", HandlerFunc(&session.VerifyHandler{
			Verifier:      verifier,
			Secret:        s.Cfg.JWTSecret,
			SessionTTLHrs: s.Cfg.SessionTTLHrs,
		}))

		// protected API routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(verifier, authn.SourceHeader|authn.SourceCookie, middleware.JSON401()))
			r.Get("/lessons", HandlerFunc(&lesson.ListHandler{}))
			r.Post("/ai/code-review", HandlerFunc(&review.Handler{Reviewer: s.Reviewer}))
			r.Get("/problems", HandlerFunc(&problem.ListHandler{DB: s.DB}))
			r.Get("/problems/{id}", HandlerFunc(&problem.GetHandler{DB: s.DB}))
		})
	})

	return r
}

func (s *Server) Run() error {
	s.Log.Infof("Server running on %s", s.Addr)
	return http.ListenAndServe(s.Addr, s.Router())
}
