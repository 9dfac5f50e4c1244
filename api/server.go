package api

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-cms-backend/auth"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog/log"
)

// Dependencies are the long-lived collaborators shared by every handler.
type Dependencies struct {
	Database database.Database
	Storage  storage.Storage
	Tokens   *auth.TokenManager
	Notifier services.Notifier
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.AppConfig, deps Dependencies) (Server, error) {
	if deps.Storage == nil {
		return Server{}, errors.New("api: storage is required")
	}
	if deps.Tokens == nil {
		return Server{}, errors.New("api: token manager is required")
	}
	if deps.Notifier == nil {
		deps.Notifier = services.NewMultiNotifier()
	}

	address := fmt.Sprintf("0.0.0.0:%d", cfg.HTTP.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.HTTP.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.HTTP.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.AppConfig
	startupTime time.Time
}

func withConfig(c config.AppConfig) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	if router.config.IsProduction() {
		chiRouter.Use(HTTPLoggingMiddleware(log.Logger))
	} else {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}

	// Initialize all handlers
	handlers := initializeHandlers(deps, router.config, router.startupTime)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(deps.Tokens, deps.Database.AdminUserRepo())

	// Apply CORS middleware
	acceptedOrigins := router.config.AcceptedOrigins
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	// Setup all route types
	setupTestRoutes(chiRouter, handlers)
	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)
	setupMediaRoutes(chiRouter, deps.Storage, router.config.MediaURL)

	return chiRouter
}

// setupMediaRoutes serves uploaded files when they live on the local disk. Remote backends hand out
// their own URLs.
func setupMediaRoutes(r chi.Router, store storage.Storage, mediaURL string) {
	local, ok := store.(*storage.Local)
	if !ok {
		return
	}
	prefix := "/" + strings.Trim(mediaURL, "/")
	if prefix == "/" {
		prefix = "/media"
	}
	fileServer := http.StripPrefix(prefix+"/", http.FileServer(noDirectoryFS{http.Dir(local.Root())}))
	r.Get(prefix+"/*", fileServer.ServeHTTP)
}

// noDirectoryFS hides directory listings.
type noDirectoryFS struct {
	fs http.FileSystem
}

func (n noDirectoryFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, errDirectory
	}
	return f, nil
}

var errDirectory = fmt.Errorf("directory listing: %w", fs.ErrNotExist)

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
