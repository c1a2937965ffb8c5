// cmd/onboard/serve.go
//
// serve – web front-end.
//
// Router
// ------
//
//	RequestID → RealIP → Recoverer → RequestLog → Security
//	  /<name>…   every registered component (components/signup)
//	  /metrics   Prometheus
//	  /healthz   liveness
//	  /          303 → /signup
//
// Shutdown
// --------
// SIGINT or SIGTERM cancels the root context; the errgroup then drains the
// server with a bounded grace period.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/onboard/components/signup"
	"github.com/yanizio/onboard/internal/component"
	"github.com/yanizio/onboard/internal/config"
	"github.com/yanizio/onboard/internal/form"
	"github.com/yanizio/onboard/internal/logger"
	"github.com/yanizio/onboard/internal/middleware"
	"github.com/yanizio/onboard/internal/server"
	"github.com/yanizio/onboard/internal/session"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the signup form over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	v, sub, err := buildForm(cfg)
	if err != nil {
		return err
	}

	//
	// ── 1.  Shared state ────────────────────────────────────────────────
	//
	users := &form.MemoryUsers{}
	store := session.NewStore(cfg.Session.Capacity, cfg.Session.CookieName, func() *form.Form {
		return form.New(v, sub, users)
	})
	csrf := form.NewCSRF(csrfKey(cmd.Context(), cfg.CSRF, log), cfg.CSRF.MaxAge)

	//
	// ── 2.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestLog, middleware.Security)

	component.Register(signup.New(store, users, csrf))
	mounted := component.Mount(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/signup", http.StatusSeeOther)
	})

	//
	// ── 3.  Serve until signalled ──────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.HTTP, r)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr, "components", mounted, "endpoint", cfg.Submit.Endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Infow("shutting down", "grace", shutdownGrace, "sessions", store.Len())
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
