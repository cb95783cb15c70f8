// Command rolodex serves the corporate directory API.
//
//	rolodex -employees staff.csv -participants teams.csv [-save state.json] [-listen host:port] [-debug]
//	rolodex hash <password>
//
// @title                       Rolodex API
// @version                     1.0
// @description                 Corporate directory with token-based access.
// @BasePath                    /
// @securityDefinitions.apikey  APIToken
// @in                          header
// @name                        X-API-Token
// @securityDefinitions.basic   BasicAuth
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightpixel/rolodex/internal/api"
	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/core/ports"
	"github.com/brightpixel/rolodex/internal/core/service"
	mongostore "github.com/brightpixel/rolodex/internal/infrastructure/db/mongo"
	redisstore "github.com/brightpixel/rolodex/internal/infrastructure/db/redis"
	"github.com/brightpixel/rolodex/internal/infrastructure/loader"
	"github.com/brightpixel/rolodex/internal/infrastructure/snapshot"
	"github.com/brightpixel/rolodex/internal/pkg/config"
	"github.com/brightpixel/rolodex/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash" {
		os.Exit(runHash(os.Args[2:]))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v.\n", err)
		os.Exit(1)
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v.\n", err)
		flag.Usage()
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Debug: cfg.Debug, Pretty: cfg.LogPretty})

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("rolodex stopped")
	}
}

func parseFlags(cfg *config.Config) {
	fs := flag.CommandLine
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "USAGE: %s -employees <file.csv> -participants <file.csv> [-save <file.json>] [-listen <ip:port>] [-debug]\n", os.Args[0])
		fs.PrintDefaults()
	}

	for _, name := range []string{"listen", "l"} {
		fs.StringVar(&cfg.Listen, name, cfg.Listen, "address to listen on (host[:port])")
	}
	for _, name := range []string{"employees", "e"} {
		fs.StringVar(&cfg.Employees, name, cfg.Employees, "staff CSV file")
	}
	for _, name := range []string{"participants", "p"} {
		fs.StringVar(&cfg.Participants, name, cfg.Participants, "participant credentials CSV file")
	}
	for _, name := range []string{"save", "s"} {
		fs.StringVar(&cfg.SaveFile, name, cfg.SaveFile, "snapshot file for the file backend")
	}
	for _, name := range []string{"debug", "d"} {
		fs.BoolVar(&cfg.Debug, name, cfg.Debug, "enable debug logging")
	}
	flag.Parse()
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	store, backend, closeStore, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	snap, err := restoreOrLoad(ctx, store, cfg, log)
	if err != nil {
		return err
	}

	staff, err := loader.LoadStaff(cfg.Employees)
	if err != nil {
		return err
	}
	log.Info().Int("staff", len(staff)).Int("participants", len(snap.Participants)).Str("snapshot", backend).Msg("roster loaded")

	state := service.NewState(staff, snap, store, log)
	authService := service.NewAuthService(state, domain.AccessTokenLifetime, log)
	directoryService := service.NewDirectoryService(state, log)

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Directory:    directoryService,
		Snapshot:     store,
		SnapshotName: backend,
		Log:          log,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := cfg.ListenAddr()
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openSnapshotStore returns a nil store when persistence is disabled.
func openSnapshotStore(ctx context.Context, cfg *config.Config) (ports.SnapshotStore, string, func(), error) {
	noop := func() {}
	if !cfg.SnapshotEnabled() {
		return nil, "disabled", noop, nil
	}

	switch cfg.Snapshot.Backend {
	case config.BackendRedis:
		store, err := redisstore.Open(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Key: cfg.Redis.Key})
		if err != nil {
			return nil, "", noop, err
		}
		return store, config.BackendRedis, func() { _ = store.Close() }, nil
	case config.BackendMongo:
		store, err := mongostore.Open(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Collection: cfg.Mongo.Collection})
		if err != nil {
			return nil, "", noop, err
		}
		return store, config.BackendMongo, func() { _ = store.Close(context.Background()) }, nil
	default:
		return snapshot.NewFileStore(cfg.SaveFile), config.BackendFile, noop, nil
	}
}

// restoreOrLoad prefers a saved snapshot and falls back to the pristine
// participant file. Any other restore failure aborts startup.
func restoreOrLoad(ctx context.Context, store ports.SnapshotStore, cfg *config.Config, log zerolog.Logger) (*domain.Snapshot, error) {
	if store != nil {
		snap, err := store.Load(ctx)
		switch {
		case err == nil:
			log.Info().Msg("restoring participant data from saved state")
			return snap, nil
		case !errors.Is(err, domain.ErrSnapshotNotFound):
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
	}

	log.Info().Msg("loading participant data from pristine state")
	return loader.LoadParticipants(cfg.Participants)
}

// runHash prints a bcrypt hash usable in the participants file.
func runHash(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "USAGE: %s hash <password>\n", os.Args[0])
		return 1
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v.\n", err)
		return 1
	}
	fmt.Println(string(hash))
	return 0
}
