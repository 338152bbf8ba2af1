// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/junkawahara/reliability-tdzdd/internal/config"
)

func runWatch(cmd *cobra.Command, args []string) error {
	l, err := newLoader(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return watch(ctx, l, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// watch computes the reliability for the current configuration, then again
// after each reload, until ctx is done. Failed computations are logged and do
// not stop the loop.
func watch(ctx context.Context, l *config.Loader, out, errw io.Writer) error {
	if l.Config().Graph == "-" {
		return errStdinWatch
	}
	changes := notify(l)
	stop, err := l.Watch()
	if err != nil {
		return err
	}
	defer stop()

	cfg := l.Config()
	for {
		logger := newLogger(cfg, errw)
		if err := report(cfg, nil, out, logger); err != nil {
			logger.Error("computation failed", "error", err)
		}
		logger.Info("waiting for changes", "files", l.Files())
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			cfg = l.Config()
			logger.Info("input changed, recomputing")
		}
	}
}

// notify returns a channel that receives a value after a reload of l. Reloads
// that happen while a value is pending are merged with it, so the receiver
// must read l.Config() to get the latest configuration.
func notify(l *config.Loader) <-chan struct{} {
	changes := make(chan struct{}, 1)
	l.OnChange(func(*config.Config) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return changes
}

var errStdinWatch = errors.New("cannot watch a graph read from stdin")
