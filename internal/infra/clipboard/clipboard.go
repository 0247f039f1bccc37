// Package clipboard provides share surfaces backed by the system clipboard
// and by an external share command.
package clipboard

import (
	"context"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
)

// Overridable for tests.
var (
	clipboardWriteAll    = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	lookPath             = exec.LookPath
)

// Surface places share URLs on the system clipboard.
type Surface struct{}

// NewSurface creates a clipboard surface.
func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Name() string {
	return "clipboard"
}

func (s *Surface) Available() bool {
	return !clipboardUnsupported()
}

func (s *Surface) Share(_ context.Context, _ string, url string) error {
	if err := clipboardWriteAll(url); err != nil {
		return errors.Wrap(err, "failed to write to clipboard")
	}
	return nil
}

// CommandSurface hands share URLs to an external command such as a
// platform share sheet helper. "{url}" and "{title}" in its arguments are
// replaced.
type CommandSurface struct {
	argv []string
}

// NewCommandSurface creates a command surface. An empty argv is never
// available.
func NewCommandSurface(argv []string) *CommandSurface {
	return &CommandSurface{argv: argv}
}

func (s *CommandSurface) Name() string {
	return "command"
}

func (s *CommandSurface) Available() bool {
	if len(s.argv) == 0 {
		return false
	}
	_, err := lookPath(s.argv[0])
	return err == nil
}

func (s *CommandSurface) Share(ctx context.Context, title, url string) error {
	if len(s.argv) == 0 {
		return errors.New("no share command configured")
	}

	args := expand(s.argv[1:], title, url)
	out, err := exec.CommandContext(ctx, s.argv[0], args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "share command failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func expand(args []string, title, url string) []string {
	r := strings.NewReplacer("{url}", url, "{title}", title)
	result := make([]string, len(args))
	for i, a := range args {
		result[i] = r.Replace(a)
	}
	return result
}
