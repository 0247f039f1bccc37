package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_Share(t *testing.T) {
	var written string
	origWrite, origUnsupported := clipboardWriteAll, clipboardUnsupported
	defer func() { clipboardWriteAll, clipboardUnsupported = origWrite, origUnsupported }()

	clipboardWriteAll = func(text string) error {
		written = text
		return nil
	}
	clipboardUnsupported = func() bool { return false }

	s := NewSurface()
	assert.Equal(t, "clipboard", s.Name())
	assert.True(t, s.Available())
	require.NoError(t, s.Share(context.Background(), "A", "https://radio.example.com/?play=A"))
	assert.Equal(t, "https://radio.example.com/?play=A", written)

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	assert.Error(t, s.Share(context.Background(), "A", "x"))

	clipboardUnsupported = func() bool { return true }
	assert.False(t, s.Available())
}

func TestCommandSurface(t *testing.T) {
	origLookPath := lookPath
	defer func() { lookPath = origLookPath }()

	assert.False(t, NewCommandSurface(nil).Available())

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	assert.False(t, NewCommandSurface([]string{"termux-share", "{url}"}).Available())

	lookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	assert.True(t, NewCommandSurface([]string{"termux-share", "{url}"}).Available())
}

func TestCommandSurface_Share(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	s := NewCommandSurface([]string{"sh", "-c", `test "$0" = "A" && test "$1" = "https://x/?play=A"`, "{title}", "{url}"})
	require.NoError(t, s.Share(context.Background(), "A", "https://x/?play=A"))

	s = NewCommandSurface([]string{"sh", "-c", "exit 3"})
	assert.Error(t, s.Share(context.Background(), "A", "https://x/"))
}

func TestExpand(t *testing.T) {
	assert.Equal(t,
		[]string{"--text", "Listen: A https://x/"},
		expand([]string{"--text", "Listen: {title} {url}"}, "A", "https://x/"))
}
