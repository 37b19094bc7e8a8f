package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/config"
	"github.com/osse101/Pokemonkey_Go/internal/handler"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/metrics"
	"github.com/osse101/Pokemonkey_Go/internal/session"
	"github.com/osse101/Pokemonkey_Go/internal/sse"
)

// Deps are the collaborators the HTTP layer routes to.
type Deps struct {
	Sessions session.Service
	Tokens   *auth.TokenManager
	// Ready is checked by /readyz, keyed by the name reported per check.
	Ready   map[string]handler.Pinger
	Version string
	// Events serves /api/v1/me/events when set.
	Events *sse.Hub
	// Activity serves /api/v1/me/activity when set.
	Activity handler.ActivityReader
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg *config.Config, deps Deps) *Server {
	detector := NewSuspiciousActivityDetector(DefaultRateWindow, cfg.RateLimitPer5m)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps, detector),
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// NewRouter builds the full route tree. Chi middleware executes in the order
// defined, outermost first.
func NewRouter(cfg *config.Config, deps Deps, detector *SuspiciousActivityDetector) http.Handler {
	maxBytes := cfg.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Ready))
	r.Get("/version", handler.HandleVersion(deps.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	accounts := handler.NewAccountHandler(deps.Sessions, deps.Tokens)
	progress := handler.NewProgressHandler(deps.Sessions)
	market := handler.NewMarketHandler(deps.Sessions)
	memo := handler.NewMemoHandler(deps.Sessions)
	teams := handler.NewTeamHandler(deps.Sessions)
	requireToken := auth.RequireToken(deps.Tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", accounts.HandleRegister)
			r.Post("/login", accounts.HandleLogin)
			r.With(requireToken).Post("/logout", accounts.HandleLogout)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(requireToken)

			r.Get("/state", progress.HandleGetState)
			r.Get("/missions", progress.HandleGetMissions)
			r.Post("/missions/{id}/start", progress.HandleStartMission)
			r.Get("/reports", progress.HandleListReports)
			r.Post("/reports", progress.HandleSubmitReport)

			r.Get("/skins", market.HandleListSkins)
			r.Post("/skins/buy", market.HandleBuySkin)
			r.Post("/skins/equip", market.HandleEquipSkin)

			r.Get("/plans", memo.HandleListPlans)
			r.Post("/plans", memo.HandleAddPlan)
			r.Post("/plans/{id}/toggle", memo.HandleTogglePlan)
			r.Delete("/plans/{id}", memo.HandleDeletePlan)

			r.Get("/team", teams.HandleGetTeam)
			r.Get("/active-users", teams.HandleGetActiveUsers)

			if deps.Events != nil {
				r.Get("/events", sse.Handler(deps.Events))
			}
			if deps.Activity != nil {
				r.Get("/activity", handler.HandleGetActivity(deps.Activity))
			}
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
		} else {
			out[k] = v
		}
	}
	return out
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
