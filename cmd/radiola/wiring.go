package main

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/deeplink"
	"github.com/osa030/radiola/internal/app/playback"
	"github.com/osa030/radiola/internal/app/session"
	"github.com/osa030/radiola/internal/app/share"
	"github.com/osa030/radiola/internal/domain/catalog"
	"github.com/osa030/radiola/internal/infra/audio"
	"github.com/osa030/radiola/internal/infra/catalogfile"
	"github.com/osa030/radiola/internal/infra/clipboard"
	"github.com/osa030/radiola/internal/infra/config"
	"github.com/osa030/radiola/internal/infra/source"
)

// components holds the infrastructure shared by all commands.
type components struct {
	cfg         *config.Config
	catalogFrom *source.Fetcher
	catalogName string
	media       *source.Fetcher
}

func newComponents(cfg *config.Config) (*components, error) {
	timeout := time.Duration(cfg.Catalog.TimeoutSec) * time.Second

	root, name := source.Split(cfg.Catalog.Source)
	if name == "" {
		return nil, fmt.Errorf("catalog source has no document name: %s", cfg.Catalog.Source)
	}
	catalogFrom, err := source.New(source.Config{
		Root:       root,
		Timeout:    timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid catalog source: %w", err)
	}

	mediaRoot := cfg.Catalog.MediaRoot
	if mediaRoot == "" {
		mediaRoot = root
	}
	media, err := source.New(source.Config{
		Root:       mediaRoot,
		Timeout:    timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid media root: %w", err)
	}

	zlog.Debug().Msgf("Catalog: root=%s name=%s media=%s", catalogFrom.Root(), name, media.Root())
	return &components{
		cfg:         cfg,
		catalogFrom: catalogFrom,
		catalogName: name,
		media:       media,
	}, nil
}

// loadCatalog loads the catalog document once.
func (c *components) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalogfile.Load(ctx, c.catalogFrom, c.catalogName)
}

// newSharer builds the share surfaces: the native share command first,
// then the clipboard.
func (c *components) newSharer() *share.Sharer {
	var surfaces []share.Surface
	if len(c.cfg.Share.Command) > 0 {
		zlog.Debug().Msgf("Share command: %s", joinArgs(c.cfg.Share.Command))
		surfaces = append(surfaces, clipboard.NewCommandSurface(c.cfg.Share.Command))
	}
	surfaces = append(surfaces, clipboard.NewSurface())
	return share.NewSharer(surfaces...)
}

func (c *components) newLinkBuilder() (*deeplink.Builder, error) {
	return deeplink.NewBuilder(c.cfg.Share.BaseURL, deeplink.Scheme(c.cfg.Share.Scheme))
}

// newSession creates a session that plays through the speaker.
func (c *components) newSession(link string) (*session.Manager, error) {
	tick := time.Duration(c.cfg.Playback.TickMs) * time.Millisecond

	if !audio.Available {
		zlog.Warn().Msg("Audio output is not available in this build; every track will fail to load")
	}

	return session.NewManager(c.cfg, session.Options{
		Loader: session.LoaderFunc(c.loadCatalog),
		NewMedia: func(sink playback.MediaSink) playback.Media {
			return audio.New(c.media, sink, audio.Config{Tick: tick})
		},
		Sharer:      c.newSharer(),
		InitialLink: link,
	})
}
