package deeplink

import (
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/domain/catalog"
)

// Builder produces absolute share URLs.
type Builder struct {
	base   *url.URL
	scheme Scheme
}

// NewBuilder creates a builder for the base URL under the given scheme.
func NewBuilder(baseURL string, scheme Scheme) (*Builder, error) {
	if scheme != SchemeQuery && scheme != SchemeFragment {
		return nil, errors.Wrapf(ErrUnknownScheme, "scheme=%s", scheme)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base URL")
	}
	if !u.IsAbs() {
		return nil, errors.Newf("base URL must be absolute: %s", baseURL)
	}
	return &Builder{base: u, scheme: scheme}, nil
}

// Scheme returns the builder scheme.
func (b *Builder) Scheme() Scheme {
	return b.scheme
}

// Track builds the share URL for canonical index i. Under the query scheme
// the link also carries the criteria so the recipient sees the same view.
func (b *Builder) Track(cat *catalog.Catalog, i int, criteria filter.Criteria) (string, error) {
	t, ok := cat.At(i)
	if !ok {
		return "", errors.Wrapf(ErrInvalidIndex, "index=%d", i)
	}

	u := *b.base
	switch b.scheme {
	case SchemeFragment:
		u.RawQuery = ""
		u.Fragment = Fragment(i)
		u.RawFragment = ""
	default:
		values := Query(criteria)
		values.Set("play", t.Title)
		u.RawQuery = values.Encode()
		u.Fragment = ""
		u.RawFragment = ""
	}
	return u.String(), nil
}

// View builds the share URL for a view without a track. The fragment scheme
// cannot address views, so it yields the bare base URL.
func (b *Builder) View(criteria filter.Criteria) string {
	u := *b.base
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""
	if b.scheme == SchemeQuery {
		u.RawQuery = Query(criteria).Encode()
	}
	return u.String()
}

// Query encodes the winning selector of criteria and its title query.
func Query(criteria filter.Criteria) url.Values {
	values := url.Values{}
	if name, value := criteria.Selector(); name != "" {
		values.Set(name, value)
	}
	if criteria.Query != "" {
		values.Set("q", criteria.Query)
	}
	return values
}
