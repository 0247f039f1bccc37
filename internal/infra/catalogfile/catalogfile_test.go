package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radiola/internal/infra/source"
)

const jsonDoc = `{
  "songs": [
    {"title": "A", "file": "music/a.mp3", "genre": "Rock", "tags": ["live"]},
    {"title": "B", "file": "music/b.mp3", "genre": "Jazz"}
  ],
  "playlists": {"road trip": ["B"]}
}`

const yamlDoc = `
songs:
  - title: A
    file: music/a.mp3
    genre: Rock
    tags: [live]
  - title: B
    file: music/b.mp3
    genre: Jazz
playlists:
  road trip: [B]
`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr bool
	}{
		{name: "json", data: jsonDoc, format: FormatJSON},
		{name: "yaml", data: yamlDoc, format: FormatYAML},
		{name: "broken json", data: `{"songs": [`, format: FormatJSON, wantErr: true},
		{name: "missing file", data: `{"songs": [{"title": "A"}]}`, format: FormatJSON, wantErr: true},
		{name: "missing title", data: `{"songs": [{"file": "a.mp3"}]}`, format: FormatJSON, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, doc.Songs, 2)
			assert.Equal(t, "A", doc.Songs[0].Title)
			assert.Equal(t, []string{"live"}, doc.Songs[0].Tags)
			assert.Equal(t, []string{"B"}, doc.Playlists["road trip"])
		})
	}
}

func TestParse_LegacyKeys(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "musicas": [{"titulo": "Samba", "arquivo": "m/samba.mp3", "genero": "MPB", "tags": ["br"]}],
	  "playlists": {"festa": ["Samba"]}
	}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Songs, 1)
	assert.Equal(t, "Samba", doc.Songs[0].Title)
	assert.Equal(t, "m/samba.mp3", doc.Songs[0].File)
	assert.Equal(t, "MPB", doc.Songs[0].Genre)
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse([]byte(`{}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, doc.Songs)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("songs.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("songs.YML?v=1"))
	assert.Equal(t, FormatJSON, FormatOf("songs.json"))
	assert.Equal(t, FormatJSON, FormatOf("songs"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "songs.yaml"), []byte(yamlDoc), 0o644))

	f, err := source.New(source.Config{Root: dir})
	require.NoError(t, err)

	c, err := Load(context.Background(), f, "songs.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.IndexOfTitle("b"))

	_, err = Load(context.Background(), f, "missing.json")
	assert.ErrorIs(t, err, source.ErrNotFound)
}
