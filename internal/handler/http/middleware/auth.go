package middleware

import (
	"net/http"

	"github.com/dawamhq/attendance-engine-go/internal/handler/http/response"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid, unrevoked access token.
// Signature and expiry are checked by the jwtauth.Verifier ahead of this
// middleware; this layer adds the revocation list and the claim shape.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if _, _, err := jwtauth.FromContext(r.Context()); err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				response.Unauthorized(w, "Missing token")
				return
			}
			if jwtService.IsTokenRevoked(raw) {
				response.Unauthorized(w, "Token revoked")
				return
			}
			if _, err := jwtService.ValidateAccessToken(raw); err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
