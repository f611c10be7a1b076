// Package admin gates administrative routes behind a shared passphrase.
//
// This is a placeholder gate: there are no sessions and no rate limiting,
// and every admin request carries the passphrase.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	dErrors "ekathra/pkg/domain-errors"
	"ekathra/pkg/platform/httputil"
)

// Header carries the passphrase on every admin request.
const Header = "X-Admin-Passphrase"

// Gate checks candidate passphrases against a plaintext value or a bcrypt hash.
type Gate struct {
	plain []byte
	hash  []byte
}

// NewGate prefers hash when both are set.
func NewGate(passphrase, hash string) *Gate {
	if hash != "" {
		return &Gate{hash: []byte(hash)}
	}
	return &Gate{plain: []byte(passphrase)}
}

// Check returns an unauthorized error unless candidate matches.
func (g *Gate) Check(candidate string) error {
	if g.matches(candidate) {
		return nil
	}
	return dErrors.New(dErrors.CodeUnauthorized, "incorrect passphrase")
}

func (g *Gate) matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	if g.hash != nil {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)) == nil
	}
	if len(g.plain) == 0 {
		return false
	}
	// Use constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare([]byte(candidate), g.plain) == 1
}

// RequirePassphrase rejects requests whose Header does not match the gate.
func RequirePassphrase(g *Gate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Check(r.Header.Get(Header)); err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin passphrase mismatch",
					"request_id", chimw.GetReqID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
