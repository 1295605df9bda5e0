// cmd/web/main.go
//
// Atelier – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load typed config (YAML + env overlays), resolving any Vault
//     database secret.
//
//  4. Open the shared DB pool and log the addressable-tenant count.
//
//  5. Open the optional GeoLite2 database for request enrichment.
//
//  6. Build the view renderer and prewarm the canonical theme engines.
//
//  7. Mount routes: /metrics, /healthz, and the site pipeline at
//     /{tenant} and /{tenant}/{page}.
//
//  8. Wrap with request-info, security-header, and ForceHTTPS
//     middleware, then serve with hardened timeouts.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelier-sites/atelier/internal/config"
	"github.com/atelier-sites/atelier/internal/database"
	"github.com/atelier-sites/atelier/internal/logger"
	"github.com/atelier-sites/atelier/internal/middleware"
	"github.com/atelier-sites/atelier/internal/pipeline"
	"github.com/atelier-sites/atelier/internal/requestinfo"
	"github.com/atelier-sites/atelier/internal/server"
	"github.com/atelier-sites/atelier/internal/theme"
	"github.com/atelier-sites/atelier/internal/vault"
	"github.com/atelier-sites/atelier/internal/view"
)

const serverEnvPath = "/usr/local/etc/atelier/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config + secrets ───────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}
	if strings.HasPrefix(cfg.Database.Password, "vault:") {
		cli, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		if err := cfg.ResolveSecrets(ctx, cli); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
	}

	//
	// ── 2.  DB connect ─────────────────────────────────────────────────
	//
	dsn := cfg.Database.DSN
	if cfg.Database.Password != "" {
		dsn = strings.Replace(dsn, "{password}", cfg.Database.Password, 1)
	}
	db, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	// Early sanity check: how many tenants can this instance serve.
	var tenants int
	_ = db.Get(&tenants, `
	    SELECT COUNT(*) FROM models
	    WHERE status IN ('active', 'trial', 'inactive')`)
	logOut.Infow("db online", "tenants", tenants)

	//
	// ── 3.  Request enrichment + views ─────────────────────────────────
	//
	requestinfo.InitGeo(cfg.Geo.CityDB)

	views := view.NewRenderer(
		filepath.Join(cfg.Paths.Root, cfg.Themes.Dir),
		cfg.Themes.PartialsDirs,
	)
	views.Prewarm([]string{
		theme.KeyClassic, theme.KeyGlamour, theme.KeyNoir,
		theme.KeyMinimal, theme.KeyRoyal,
	})

	//
	// ── 4.  Routes ─────────────────────────────────────────────────────
	//
	pipe := pipeline.New(db, views, cfg.Themes.Default)

	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/", pipe.Routes())

	//
	// ── 5.  Serve ──────────────────────────────────────────────────────
	//
	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r)
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}
