package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/markdave123-py/dataroom/internal/api/handlers"
	"github.com/markdave123-py/dataroom/internal/api/middlewares"
	"github.com/markdave123-py/dataroom/internal/config"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/metrics"
	"github.com/markdave123-py/dataroom/internal/services"
)

type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

func NewServer(
	cfg *config.Config,
	chatSvc *services.ChatService,
	docSvc *services.DocumentService,
	embedSvc *services.EmbedService,
	catSvc *services.CategoryService,
) *Server {
	chatHandler := handlers.NewChatHandler(chatSvc)
	docHandler := handlers.NewDocumentHandler(docSvc, embedSvc)
	catHandler := handlers.NewCategoryHandler(catSvc)

	limiter := middlewares.NewIPRateLimiter(rate.Limit(10), 30)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)
	r.Use(limiter.Handler)

	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.PostChat)
		r.Get("/chat/messages", chatHandler.GetMessages)
		r.Delete("/chat/messages", chatHandler.ClearMessages)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", docHandler.List)
			r.Post("/", docHandler.Create)
			r.Get("/{id}", docHandler.Get)
			r.Patch("/{id}", docHandler.Update)
			r.Delete("/{id}", docHandler.Delete)
			r.Get("/{id}/sections", docHandler.ListSections)
			r.Post("/{id}/sections", docHandler.CreateSection)
			r.Post("/{id}/embed", docHandler.Embed)
		})

		r.Post("/upload", docHandler.Upload)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catHandler.List)
			r.Post("/", catHandler.Create)
			r.Patch("/{id}", catHandler.Update)
			r.Delete("/{id}", catHandler.Delete)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      r,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  2 * time.Minute,
		},
		log: logger.New("server"),
	}
}

func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
