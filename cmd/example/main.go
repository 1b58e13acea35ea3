package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML configuration file")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *addr); err != nil {
		log.Fatalf("admin example: %v", err)
	}
}

func run(ctx context.Context, configPath, addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	a, db, err := buildAdmin(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := logging.RootLogger(a.LoggerProvider())
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(a, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin.listen", "addr", addr, "base_path", cfg.BasePath, "resources", len(a.Resources()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("admin.shutdown")
	return srv.Shutdown(shutdownCtx)
}

func loadConfig(path string) (admin.Config, error) {
	if path == "" {
		return admin.DefaultConfig(), nil
	}
	cfg, err := admin.LoadConfigFile(path)
	if err != nil {
		return admin.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildAdmin registers the demo resources and freezes the registry.
func buildAdmin(ctx context.Context, cfg admin.Config) (*admin.Admin[appContext], *bun.DB, error) {
	members := newMemberStore(newMember{Name: "Susan", IsAdult: true})

	a, err := admin.New(appContext{members: members}, admin.WithConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := a.Register(membersResource()); err != nil {
		return nil, nil, err
	}

	notes, db, err := openNotes(ctx, cfg, a)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Register(notesResource(notes)); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	a.Freeze()
	return a, db, nil
}
