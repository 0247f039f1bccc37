package main

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/infra/config"
	"github.com/osa030/radiola/internal/infra/download"
	"github.com/osa030/radiola/internal/tui"
)

// runPlay runs the terminal player.
func runPlay(ctx context.Context, cfg *config.Config, link string) error {
	comps, err := newComponents(cfg)
	if err != nil {
		return err
	}

	sessionMgr, err := comps.newSession(link)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	defer sessionMgr.Close()

	if err := sessionMgr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	zlog.Info().Msg("Starting player")
	saver := download.NewSaver(comps.media, cfg.Download.Dir)
	if err := tui.Run(ctx, sessionMgr, saver); err != nil {
		return err
	}
	zlog.Info().Msg("Player stopped")
	return nil
}
