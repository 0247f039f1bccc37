package share

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	name      string
	available bool
	err       error
	shared    []string
}

func (f *fakeSurface) Name() string    { return f.name }
func (f *fakeSurface) Available() bool { return f.available }
func (f *fakeSurface) Share(_ context.Context, _ string, url string) error {
	if f.err != nil {
		return f.err
	}
	f.shared = append(f.shared, url)
	return nil
}

func TestSharer_Share(t *testing.T) {
	const url = "https://radio.example.com/#/track/1"

	tests := []struct {
		name        string
		native      *fakeSurface
		clipboard   *fakeSurface
		wantSurface string
		wantErr     bool
	}{
		{
			name:        "native first",
			native:      &fakeSurface{name: "command", available: true},
			clipboard:   &fakeSurface{name: "clipboard", available: true},
			wantSurface: "command",
		},
		{
			name:        "fallback when native unavailable",
			native:      &fakeSurface{name: "command"},
			clipboard:   &fakeSurface{name: "clipboard", available: true},
			wantSurface: "clipboard",
		},
		{
			name:        "fallback when native fails",
			native:      &fakeSurface{name: "command", available: true, err: errors.New("cancelled")},
			clipboard:   &fakeSurface{name: "clipboard", available: true},
			wantSurface: "clipboard",
		},
		{
			name:      "everything fails",
			native:    &fakeSurface{name: "command", available: true, err: errors.New("cancelled")},
			clipboard: &fakeSurface{name: "clipboard", available: true, err: errors.New("no display")},
			wantErr:   true,
		},
		{
			name:      "nothing available",
			native:    &fakeSurface{name: "command"},
			clipboard: &fakeSurface{name: "clipboard"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSharer(tt.native, tt.clipboard)
			result, err := s.Share(context.Background(), "A", url)
			assert.Equal(t, url, result.URL)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoSurface)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSurface, result.Surface)
		})
	}
}

func TestSharer_Surfaces(t *testing.T) {
	s := NewSharer(&fakeSurface{name: "command"}, &fakeSurface{name: "clipboard", available: true})
	assert.Equal(t, []string{"clipboard"}, s.Surfaces())
}
