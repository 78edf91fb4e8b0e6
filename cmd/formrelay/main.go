// cmd/formrelay/main.go
//
// Formrelay – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load layered configuration (.env → conf/global.yaml → FORMRELAY_ env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Resolve the optional relay auth secret through Vault when the config
//     value carries the `vault:` prefix.
//
//  4. Load the contact form presentation definition.
//
//  5. Open the optional journal database; skip quietly when no DSN is set.
//
//  6. Build the shared Submitter, the request-info resolver, and the HTTP
//     server; serve until SIGINT/SIGTERM, then drain gracefully.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanizio/formrelay/internal/config"
	"github.com/yanizio/formrelay/internal/database"
	"github.com/yanizio/formrelay/internal/journal"
	"github.com/yanizio/formrelay/internal/logger"
	"github.com/yanizio/formrelay/internal/page"
	"github.com/yanizio/formrelay/internal/relay"
	"github.com/yanizio/formrelay/internal/requestinfo"
	"github.com/yanizio/formrelay/internal/server"
	"github.com/yanizio/formrelay/internal/vault"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	//
	// ── 3.  Relay auth secret (optional, Vault-backed) ──────────────────
	//
	authValue := cfg.Relay.AuthSecret
	if vault.IsReference(authValue) {
		cli, err := vault.New(ctx, logOut)
		if err != nil {
			logOut.Fatalw("vault client init failed", "error", err)
		}
		authValue, err = cli.Resolve(ctx, authValue)
		if err != nil {
			logOut.Fatalw("relay auth secret resolve failed", "error", err)
		}
		logOut.Infow("relay auth secret resolved from vault")
	}

	//
	// ── 4.  Form presentation definition ────────────────────────────────
	//
	formDef, err := page.LoadFormDef(cfg.Page.FormDef)
	if err != nil {
		logOut.Fatalw("form definition load failed", "error", err)
	}

	//
	// ── 5.  Journal (optional) ──────────────────────────────────────────
	//
	var j *journal.Journal
	if cfg.Journal.DSN != "" {
		db, err := database.Open(cfg.Journal.DSN)
		if err != nil {
			logOut.Fatalw("journal DB connect failed", "error", err)
		}
		defer db.Close()
		j = journal.New(db, logOut)
		logOut.Infow("journal online")
	} else {
		logOut.Infow("journal disabled, no DSN configured")
	}

	//
	// ── 6.  Wiring and serve ────────────────────────────────────────────
	//
	resolver, err := requestinfo.NewResolver(cfg.GeoIP.DBPath)
	if err != nil {
		logOut.Fatalw("geoip init failed", "error", err)
	}
	defer resolver.Close()

	sub := relay.New(relay.Options{
		Endpoint:   cfg.Relay.EndpointURL,
		Timeout:    time.Duration(cfg.Relay.TimeoutSeconds) * time.Second,
		AuthHeader: cfg.Relay.AuthHeader,
		AuthValue:  authValue,
	}, logOut)

	srv := server.New(cfg, logOut, sub, j, resolver, formDef)
	httpSrv := server.NewHTTPServer(cfg.HTTP.ListenAddr, srv.Router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalw("server exited", "error", err)
	}
	logOut.Infow("shutdown complete")
}
