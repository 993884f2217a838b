package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/doc-studio/engine/internal/api/middleware"
	"github.com/doc-studio/engine/internal/api/types"
	"github.com/doc-studio/engine/internal/api/validators"
	"github.com/doc-studio/engine/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	tokenTTL time.Duration
}

func NewAuthHandler(auth services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.OK(types.NewUserView(u)))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	token, u, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.OK(types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokenTTL.Seconds()),
		User:        types.NewUserView(u),
	}))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(types.NewUserView(u)))
}
