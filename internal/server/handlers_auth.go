package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenRequest is the body for POST /api/auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleAuthToken handles POST /api/auth/token: exchanges the configured
// API key for a signed bearer token.
func (s *Server) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if !s.config.Auth.Enabled() {
		WriteError(w, http.StatusNotFound, "Authentication is not configured")
		return
	}

	var req TokenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(req.APIKey)); err != nil {
		s.logger.Warn().Msg("Token request with invalid API key")
		WriteError(w, http.StatusUnauthorized, "Invalid API key")
		return
	}

	expiresAt := time.Now().Add(s.config.Auth.GetTokenExpiry())
	claims := jwt.MapClaims{
		"sub": "api",
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{Token: signed, ExpiresAt: expiresAt})
}
