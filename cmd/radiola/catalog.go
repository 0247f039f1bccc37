package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/infra/config"
	"github.com/osa030/radiola/internal/infra/download"
	"github.com/osa030/radiola/internal/infra/qr"
)

// runList prints the view for search as a table.
func runList(ctx context.Context, cfg *config.Config, search string) error {
	comps, err := newComponents(cfg)
	if err != nil {
		return err
	}
	cat, err := comps.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.GetMessage("load_error"), err)
	}

	criteria := filter.ParseSearch(search)
	chain, err := filter.Build(criteria, cfg.FilterSettings())
	if err != nil {
		return err
	}
	v := chain.Execute(cat)
	if v.IsEmpty() {
		fmt.Println(cfg.GetMessage("empty_view"))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Genre", "Tags", "File"})
	for _, idx := range v.Indices() {
		tr, _ := cat.At(idx)
		t.AppendRow(table.Row{idx, tr.Title, tr.Genre, strings.Join(tr.Tags, ", "), tr.File})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d songs", v.Len(), cat.Len())})
	t.Render()
	return nil
}

// runShare prints (and optionally sends) the share link for index, or for
// the view when index is negative.
func runShare(ctx context.Context, cfg *config.Config, index int, search string, withQR, send bool) error {
	comps, err := newComponents(cfg)
	if err != nil {
		return err
	}
	links, err := comps.newLinkBuilder()
	if err != nil {
		return err
	}

	criteria := filter.ParseSearch(search)
	url := links.View(criteria)
	title := ""
	if index >= 0 {
		cat, err := comps.loadCatalog(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.GetMessage("load_error"), err)
		}
		if url, err = links.Track(cat, index, criteria); err != nil {
			return err
		}
		tr, _ := cat.At(index)
		title = tr.Title
	}

	fmt.Println(url)
	if withQR {
		code, err := qr.Render(url, false)
		if err != nil {
			return err
		}
		fmt.Print(code)
	}
	if send {
		res, err := comps.newSharer().Share(ctx, title, url)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.GetMessage("share_failed"), err)
		}
		fmt.Printf("%s (%s)\n", cfg.GetMessage("shared"), res.Surface)
	}
	return nil
}

// runDownload saves the file of index under its final path segment.
func runDownload(ctx context.Context, cfg *config.Config, index int, dir string) error {
	comps, err := newComponents(cfg)
	if err != nil {
		return err
	}
	cat, err := comps.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.GetMessage("load_error"), err)
	}

	tr, ok := cat.At(index)
	if !ok {
		return fmt.Errorf("no track at index %d", index)
	}
	if dir == "" {
		dir = cfg.Download.Dir
	}

	path, err := download.NewSaver(comps.media, dir).Save(ctx, tr.File)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", cfg.GetMessage("downloaded"), path)
	return nil
}
