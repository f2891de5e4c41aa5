// Package server wires the HTTP API: middleware, routes and lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/handler"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/metrics"
	"github.com/osse101/PhonesBot_Go/internal/reward"
	"github.com/osse101/PhonesBot_Go/internal/upgrade"
	"github.com/osse101/PhonesBot_Go/internal/user"
)

// Options are the transport settings of the server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	MaxBodyBytes   int64
	Detector       *SuspiciousActivityDetector
}

// Services are the domain services exposed over HTTP
type Services struct {
	Users    user.Service
	Economy  economy.Service
	Rewards  reward.Service
	Upgrades upgrade.Service
	Catalog  *catalog.Table
	Store    handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full route tree. Middleware runs outermost first.
func NewRouter(opts Options, svc Services) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxRequestBodySize
	}
	detector := opts.Detector
	if detector == nil {
		detector = NewSuspiciousActivityDetector()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/register", handler.HandleRegisterUser(svc.Users))

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", handler.HandleGetProfile(svc.Users))
			r.Get("/balance", handler.HandleGetBalance(svc.Economy))
			r.Get("/items", handler.HandleListItems(svc.Economy))
			r.Post("/draw", handler.HandleDrawCard(svc.Rewards))
			r.Post("/items/{itemID}/upgrade", handler.HandleUpgradeItem(svc.Upgrades))
			r.Post("/items/{itemID}/sell", handler.HandleSellItem(svc.Economy))
			r.Post("/sell-all", handler.HandleSellAll(svc.Economy))
			r.Post("/buy", handler.HandleBuyItem(svc.Economy))
			r.Post("/transfer", handler.HandleTransfer(svc.Economy))
			r.Post("/wager", handler.HandleWager(svc.Economy))
			r.Post("/daily", handler.HandleClaimDaily(svc.Economy))
			r.Post("/farm/collect", handler.HandleCollectFarm(svc.Economy))
			r.Post("/perks", handler.HandleBuyPerk(svc.Economy))
		})

		r.Get("/shop/{rarity}", handler.HandleShopListing(svc.Economy))
		r.Get("/catalog", handler.HandleGetCatalog(svc.Catalog))
		r.Get("/leaderboard", handler.HandleLeaderboard(svc.Economy))
	})

	return r
}

// loggingMiddleware assigns a request id and logs the start and end of
// every non-public request. Secrets are redacted from logged headers.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
