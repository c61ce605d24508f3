package albums

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second

	seedAttempts = 60
	seedBaseWait = 250 * time.Millisecond
	seedMaxWait  = 5 * time.Second
)

// Run connects to Redis, seeds it when configured and serves until ctx is cancelled, then
// shuts the listener down gracefully.
func Run(ctx context.Context, cfg Config, log logrus.FieldLogger) error {
	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}

	return Serve(ctx, listener, cfg, log)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, listener net.Listener, cfg Config, log logrus.FieldLogger) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = client.Close() }()

	store := NewStore(client)

	if cfg.SeedFile != "" {
		seed, err := readSeed(cfg.SeedFile)
		if err != nil {
			_ = listener.Close()

			return err
		}

		go seedWithRetry(ctx, store, seed, cfg.SeedFile, log)
	}

	server := &http.Server{
		Handler:           NewServer(store, NewMetrics(), log).Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.WithField("addr", listener.Addr().String()).Info("albums server listening")
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	err = <-serveErr
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

func readSeed(path string) (map[string]Album, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return ParseSeed(data)
}

// seedWithRetry keeps seeding until Redis accepts the writes or ctx ends. Redis may still
// be starting next to the server.
func seedWithRetry(
	ctx context.Context,
	store *Store,
	seed map[string]Album,
	path string,
	log logrus.FieldLogger,
) {
	policy := netretry.Policy{
		Attempts:  seedAttempts,
		BaseWait:  seedBaseWait,
		MaxWait:   seedMaxWait,
		Retryable: func(error) bool { return ctx.Err() == nil },
	}

	var added int

	err := netretry.Do(ctx, policy, func(ctx context.Context) error {
		var err error

		added, err = store.SeedAlbums(ctx, seed)
		if err != nil {
			log.WithError(err).Warn("seeding redis failed, retrying")
		}

		return err
	})
	if err != nil {
		log.WithError(err).Error("giving up seeding redis")

		return
	}

	log.WithFields(logrus.Fields{"file": path, "added": added}).Info("seeded albums")
}
