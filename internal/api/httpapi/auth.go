package httpapi

import (
	"crypto/subtle"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/infra/config"
)

const (
	// ControlTokenHeader is the header name for the control token.
	ControlTokenHeader = "X-Control-Token"
)

// RequireControlToken creates a middleware that validates the control token
// on mutating requests. Without a configured token every request passes.
func RequireControlToken(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Server.Token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !validToken(r.Header.Get(ControlTokenHeader), cfg.Server.Token) {
				zlog.Warn().Msgf("httpapi: rejected control request: path=%s remote=%s", r.URL.Path, r.RemoteAddr)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// validToken compares in constant time.
func validToken(got, want string) bool {
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
