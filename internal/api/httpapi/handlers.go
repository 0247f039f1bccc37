package httpapi

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/session"
	"github.com/osa030/radiola/internal/infra/download"
	"github.com/osa030/radiola/internal/infra/source"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.session.Catalog()
	if cat == nil {
		snap := s.session.Snapshot()
		http.Error(w, snap.Message, http.StatusServiceUnavailable)
		return
	}

	resp := CatalogResponse{
		Songs:     make([]Song, 0, cat.Len()),
		Playlists: make(map[string][]string),
		Genres:    cat.Genres(),
	}
	for i, t := range cat.Tracks() {
		resp.Songs = append(resp.Songs, Song{
			Index: i,
			Title: t.Title,
			File:  t.File,
			Genre: t.Genre,
			Tags:  t.Tags,
		})
	}
	for _, name := range cat.PlaylistNames() {
		p, _ := cat.Playlist(name)
		resp.Playlists[name] = p.Titles
	}

	render.JSON(w, r, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Snapshot())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newViewResponse(s.session.Snapshot()))
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := render.Bind(r, &req); err != nil {
		zlog.Warn().Err(err).Msg("httpapi: error decoding view request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.session.SetCriteria(req.criteria())
	if err != nil && !errors.Is(err, session.ErrNotReady) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, newViewResponse(snap))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.session.Select(idx))
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.session.Activate(idx))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Toggle())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Next())
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Previous())
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req SeekRequest
	if err := render.Bind(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, s.session.Seek(*req.Fraction))
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req VolumeRequest
	if err := render.Bind(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, s.session.SetVolume(*req.Level))
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.ToggleMute())
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := render.Bind(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.session.OpenLink(req.URL)
	if err != nil && !errors.Is(err, session.ErrNotReady) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render.JSON(w, r, snap)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	idx := -1
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid index", http.StatusBadRequest)
			return
		}
		idx = n
	}

	url, err := s.session.ShareURL(idx)
	switch {
	case errors.Is(err, session.ErrNotReady), errors.Is(err, session.ErrClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	render.JSON(w, r, ShareResponse{URL: url})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	idx, ok := indexParam(w, r)
	if !ok {
		return
	}

	t, ok := s.session.Track(idx)
	if !ok {
		http.Error(w, "no such track", http.StatusNotFound)
		return
	}

	rc, err := s.opener.Open(r.Context(), t.File)
	if err != nil {
		zlog.Error().Err(err).Msgf("httpapi: failed to open file: file=%s", t.File)
		if isNotFound(err) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to open file", http.StatusBadGateway)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(t.File))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", download.ContentDisposition(t.File))
	if _, err := io.Copy(w, rc); err != nil {
		zlog.Warn().Err(err).Msgf("httpapi: download interrupted: file=%s", t.File)
	}
}

// indexParam reads the {index} URL parameter. A non-numeric index is a
// malformed request; range checks are left to the session.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return 0, false
	}
	return idx, true
}

func isNotFound(err error) bool {
	if errors.Is(err, source.ErrNotFound) {
		return true
	}
	var statusErr *source.StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}
