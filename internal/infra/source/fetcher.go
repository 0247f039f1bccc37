// Package source reads catalog documents and song files from a local
// directory or an HTTP base URL.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrNotFound is returned when the named file does not exist.
var ErrNotFound = errors.New("file not found")

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Config represents fetcher configuration.
type Config struct {
	Root       string        // Directory or http(s) base URL
	Timeout    time.Duration // Per-request timeout for remote roots
	MaxRetries int           // Attempts for transient HTTP failures
}

// Fetcher opens files relative to a root.
type Fetcher struct {
	root       string
	base       *url.URL // nil for local roots
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// New creates a fetcher for the given root.
func New(cfg Config) (*Fetcher, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}

	f := &Fetcher{
		root:       cfg.Root,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: 500 * time.Millisecond,
	}

	if IsRemote(cfg.Root) {
		base, err := url.Parse(cfg.Root)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse root URL")
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		f.base = base
		f.root = base.String()
	} else if f.root == "" {
		f.root = "."
	}

	return f, nil
}

// IsRemote reports whether s is an http(s) URL.
func IsRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Split splits a catalog source into its root and document name.
func Split(source string) (root, name string) {
	if IsRemote(source) {
		u, err := url.Parse(source)
		if err != nil {
			return source, ""
		}
		dir, file := path.Split(u.Path)
		u.Path = dir
		u.RawQuery = ""
		return u.String(), file
	}
	dir, file := filepath.Split(source)
	if dir == "" {
		dir = "."
	}
	return filepath.Clean(dir), file
}

// Root returns the fetcher root.
func (f *Fetcher) Root() string {
	return f.root
}

// Remote reports whether the root is an HTTP base URL.
func (f *Fetcher) Remote() bool {
	return f.base != nil
}

// Resolve returns the absolute location (path or URL) of name.
func (f *Fetcher) Resolve(name string) string {
	if IsRemote(name) {
		return name
	}
	if f.base != nil {
		ref, err := url.Parse(strings.TrimPrefix(name, "/"))
		if err != nil {
			return f.root + name
		}
		return f.base.ResolveReference(ref).String()
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.root, filepath.FromSlash(name))
}

// Open opens name for reading. Remote reads are retried on transient errors.
func (f *Fetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	loc := f.Resolve(name)
	if !IsRemote(loc) {
		file, err := os.Open(loc)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, errors.Wrapf(ErrNotFound, "%s", loc)
			}
			return nil, errors.Wrapf(err, "failed to open %s", loc)
		}
		return file, nil
	}

	var body io.ReadCloser
	err := f.retry(ctx, func() error {
		rc, err := f.get(ctx, loc)
		if err != nil {
			return err
		}
		body = rc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ReadAll reads the whole of name.
func (f *Fetcher) ReadAll(ctx context.Context, name string) ([]byte, error) {
	rc, err := f.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return buf.Bytes(), nil
}

func (f *Fetcher) get(ctx context.Context, loc string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.Wrapf(ErrNotFound, "%s", loc)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &StatusError{URL: loc, Code: resp.StatusCode}
	}
	return resp.Body, nil
}

// retry retries an operation with linear backoff.
func (f *Fetcher) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < f.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if i < f.maxRetries-1 {
			delay := f.retryDelay * time.Duration(i+1)
			zlog.Warn().Err(err).Msgf("source: retrying in %v (attempt %d/%d)", delay, i+1, f.maxRetries)
			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "fetch cancelled")
			case <-time.After(delay):
			}
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	return false
}
