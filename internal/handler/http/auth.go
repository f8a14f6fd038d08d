package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/dawamhq/attendance-engine-go/internal/handler/http/response"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService   jwt.Service
	clientID     string
	clientSecret string
}

func NewAuthHandler(jwtService jwt.Service, clientID, clientSecret string) AuthHandler {
	return &authHandlerImpl{
		jwtService:   jwtService,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Token exchanges client credentials for an access token.
func (h *authHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	idOK := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(h.clientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(req.ClientSecret), []byte(h.clientSecret)) == 1
	if !idOK || !secretOK {
		response.Unauthorized(w, "Invalid client credentials")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// Revoke invalidates the token presented in the Authorization header.
func (h *authHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	raw := jwtauth.TokenFromHeader(r)
	if raw == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	h.jwtService.RevokeToken(raw)
	response.SuccessWithMessage(w, "Token revoked", nil)
}
