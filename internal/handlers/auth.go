package handlers

import (
	"context"
	"net/http"

	"studybuddy-backend/internal/models"
)

type tokenService interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (*models.AccessToken, error)
}

type AuthHandler struct {
	authService tokenService
}

func NewAuthHandler(authService tokenService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token exchanges a known student email for a realtime access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.authService.IssueToken(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
