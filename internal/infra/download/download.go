// Package download saves catalog files under their final path segment.
package download

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/domain/track"
)

// Opener opens named files (a source.Fetcher).
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Saver copies catalog files into a directory.
type Saver struct {
	opener Opener
	dir    string
}

// NewSaver creates a saver writing into dir.
func NewSaver(opener Opener, dir string) *Saver {
	if dir == "" {
		dir = "."
	}
	return &Saver{opener: opener, dir: dir}
}

// Save copies file into the directory under its final path segment and
// returns the written path. An existing file is replaced.
func (s *Saver) Save(ctx context.Context, file string) (string, error) {
	name := track.FileName(file)
	if name == "" || name == "." || name == ".." {
		return "", errors.Newf("no file name in %q", file)
	}

	rc, err := s.opener.Open(ctx, file)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create download directory")
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "failed to download %s", file)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close temporary file")
	}

	dest := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", errors.Wrap(err, "failed to move download into place")
	}

	zlog.Info().Msgf("download: saved: file=%s dest=%s", file, dest)
	return dest, nil
}

// ContentDisposition returns the attachment header value for file.
func ContentDisposition(file string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": track.FileName(file)})
}
