package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/app/session"
)

// Song is one catalog entry as served by GET /api/catalog.
type Song struct {
	Index int      `json:"index"`
	Title string   `json:"title"`
	File  string   `json:"file"`
	Genre string   `json:"genre"`
	Tags  []string `json:"tags,omitempty"`
}

// CatalogResponse is the body of GET /api/catalog.
type CatalogResponse struct {
	Songs     []Song              `json:"songs"`
	Playlists map[string][]string `json:"playlists"`
	Genres    []string            `json:"genres"`
}

// ViewResponse is the body of GET and PUT /api/view.
type ViewResponse struct {
	Criteria filter.Criteria `json:"criteria"`
	Query    string          `json:"query"`
	Entries  []session.Entry `json:"entries"`
	Message  string          `json:"message,omitempty"`
}

// ShareResponse is the body of GET /api/share.
type ShareResponse struct {
	URL string `json:"url"`
}

// ViewRequest is the body of PUT /api/view. Search, when set, is parsed as
// search-box input and wins over the explicit fields.
type ViewRequest struct {
	filter.Criteria
	Search *string `json:"search,omitempty"`
}

func (req *ViewRequest) Bind(r *http.Request) error {
	return nil
}

func (req *ViewRequest) criteria() filter.Criteria {
	if req.Search != nil {
		return filter.ParseSearch(*req.Search)
	}
	return req.Criteria
}

// SeekRequest is the body of POST /api/seek.
type SeekRequest struct {
	Fraction *float64 `json:"fraction"`
}

func (req *SeekRequest) Bind(r *http.Request) error {
	if req.Fraction == nil {
		return errors.New("missing fraction")
	}
	if *req.Fraction < 0 || *req.Fraction > 1 {
		return errors.New("fraction must be between 0 and 1")
	}
	return nil
}

// VolumeRequest is the body of POST /api/volume.
type VolumeRequest struct {
	Level *float64 `json:"level"`
}

func (req *VolumeRequest) Bind(r *http.Request) error {
	if req.Level == nil {
		return errors.New("missing level")
	}
	if *req.Level < 0 || *req.Level > 1 {
		return errors.New("level must be between 0 and 1")
	}
	return nil
}

// LinkRequest is the body of POST /api/link.
type LinkRequest struct {
	URL string `json:"url"`
}

func (req *LinkRequest) Bind(r *http.Request) error {
	if req.URL == "" {
		return errors.New("missing url")
	}
	return nil
}

func newViewResponse(snap session.Snapshot) ViewResponse {
	return ViewResponse{
		Criteria: snap.Criteria,
		Query:    snap.Criteria.String(),
		Entries:  snap.Entries,
		Message:  snap.Message,
	}
}
