package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"guestlist/internal/auth"
	"guestlist/internal/config"
	"guestlist/internal/logger"
	"guestlist/internal/utils"
)

type Handler struct {
	Auth   *auth.Service
	Config *config.Config
	Logger *logger.Logger
}

func NewHandler(authService *auth.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{Auth: authService, Config: cfg, Logger: log}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	AuthToken string `json:"auth_token"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}

	token, err := h.Auth.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	h.Logger.Info("AUTH", "registered "+payload.Email)
	utils.RespondJSON(w, http.StatusCreated, tokenResponse{
		Status:    "success",
		Message:   "successfully registered",
		AuthToken: token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}

	token, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.RespondMessage(w, http.StatusUnauthorized, "failed", err.Error())
			return
		}
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, tokenResponse{
		Status:    "success",
		Message:   "successfully logged in",
		AuthToken: token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "failed", err.Error())
		return
	}

	if err := h.Auth.Logout(r.Context(), token, h.Config.Auth.TokenTTL); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondSuccess(w, "successfully logged out")
}
