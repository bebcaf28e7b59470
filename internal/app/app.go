package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avstrong/hotel/internal/audit"
	"github.com/avstrong/hotel/internal/clock"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/staykey"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/storage/flatfile"
	"github.com/avstrong/hotel/internal/transport/console"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalog := hotel.NewCatalog()
	if err := migration.Up(ctx, l, catalog); err != nil {
		return fmt.Errorf("register room catalog: %w", err)
	}

	store := flatfile.New(flatfile.Config{L: l, Path: cfg.Store.File})
	clk := clock.NewRealClock()
	trail := audit.NewTrail(l, clk)
	manager := hotel.New(l, catalog, store, staykey.New(), clk, trail)

	// A broken log must not keep the desk closed: report it and start empty.
	if err := manager.Restore(ctx); err != nil {
		l.LogErrorf("Could not restore reservations from %v, starting empty: %v", cfg.Store.File, err.Error())
	}

	ui := console.New(console.Conf{
		L:                l,
		In:               os.Stdin,
		Out:              os.Stdout,
		OperatorPassword: cfg.Desk.OperatorPassword,
		DateFormat:       cfg.Desk.DateFormat,
	}, manager)

	l.LogInfo("Front desk is open, reservations stored in %v", cfg.Store.File)

	if err := ui.Run(ctx); err != nil {
		return fmt.Errorf("run front-desk console: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
