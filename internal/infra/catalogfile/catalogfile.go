// Package catalogfile loads the catalog document.
package catalogfile

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/osa030/radiola/internal/domain/catalog"
	"github.com/osa030/radiola/internal/domain/track"
)

// Format is the document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from the document name's extension.
func FormatOf(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the catalog document.
type Document struct {
	Songs     []track.Track       `json:"songs" yaml:"songs" validate:"dive"`
	Playlists map[string][]string `json:"playlists" yaml:"playlists"`
}

// legacySong is the Portuguese-keyed song record of older catalogs.
type legacySong struct {
	Title string   `json:"titulo" yaml:"titulo"`
	File  string   `json:"arquivo" yaml:"arquivo"`
	Genre string   `json:"genero" yaml:"genero"`
	Tags  []string `json:"tags" yaml:"tags"`
}

type rawDocument struct {
	Songs     []track.Track       `json:"songs" yaml:"songs"`
	Legacy    []legacySong        `json:"musicas" yaml:"musicas"`
	Playlists map[string][]string `json:"playlists" yaml:"playlists"`
}

// Reader reads named files.
type Reader interface {
	ReadAll(ctx context.Context, name string) ([]byte, error)
}

// Load reads and parses the catalog document name through r.
func Load(ctx context.Context, r Reader, name string) (*catalog.Catalog, error) {
	data, err := r.ReadAll(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog")
	}

	doc, err := Parse(data, FormatOf(name))
	if err != nil {
		return nil, err
	}

	zlog.Info().Msgf("catalog: loaded: songs=%d playlists=%d", len(doc.Songs), len(doc.Playlists))
	return catalog.New(doc.Songs, doc.Playlists), nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (*Document, error) {
	var raw rawDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to parse catalog YAML")
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to parse catalog JSON")
		}
	}

	doc := &Document{
		Songs:     raw.Songs,
		Playlists: raw.Playlists,
	}
	if len(doc.Songs) == 0 && len(raw.Legacy) > 0 {
		doc.Songs = make([]track.Track, 0, len(raw.Legacy))
		for _, s := range raw.Legacy {
			doc.Songs = append(doc.Songs, track.Track{
				Title: s.Title,
				File:  s.File,
				Genre: s.Genre,
				Tags:  s.Tags,
			})
		}
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}

	if len(doc.Songs) == 0 {
		zlog.Warn().Msg("catalog: document has no songs")
	}
	return doc, nil
}
