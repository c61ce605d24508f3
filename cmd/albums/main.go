// Package main runs the albums sample server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitops-playground/playctl/internal/buildmeta"
	"github.com/gitops-playground/playctl/pkg/albums"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := albums.LoadConfig(albums.NewViper())
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry := log.WithField("version", buildmeta.Version)

	err = albums.Run(ctx, cfg, entry)
	if err != nil {
		entry.WithError(err).Error("albums server stopped")
		stop()
		os.Exit(1)
	}
}
