package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guestlist/internal/auth"
	guests "guestlist/internal/guests/service"
	"guestlist/internal/logger"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
	"guestlist/internal/utils"
)

type Handler struct {
	Guests *guests.Service
	Logger *logger.Logger
}

func NewHandler(service *guests.Service, log *logger.Logger) *Handler {
	return &Handler{Guests: service, Logger: log}
}

type guestPayload struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
}

type guestEnvelope struct {
	Guest guestPayload `json:"guest"`
}

type guestResponse struct {
	Status string        `json:"status"`
	Guest  *models.Guest `json:"guest"`
}

type guestListResponse struct {
	Status   string         `json:"status"`
	Previous *string        `json:"previous"`
	Next     *string        `json:"next"`
	Count    int            `json:"count"`
	Guests   []models.Guest `json:"guests"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	page := utils.QueryPage(r)
	q := pagination.NormalizeQuery(utils.QuerySearch(r))

	items, info, err := h.Guests.List(r.Context(), userID, page, q)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	previous, next := utils.NavigationLinks(r, q, info)
	if items == nil {
		items = []models.Guest{}
	}
	count := info.Total
	if len(items) == 0 {
		count = 0
	}
	utils.RespondJSON(w, http.StatusOK, guestListResponse{
		Status:   "success",
		Previous: previous,
		Next:     next,
		Count:    count,
		Guests:   items,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope guestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Guest

	guest, err := h.Guests.Create(r.Context(), userID, payload.FirstName, payload.LastName, payload.Organization, payload.Email)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	h.Logger.Info("GUESTS", "created guest "+guest.Email)
	utils.RespondJSON(w, http.StatusCreated, guestResponse{Status: "success", Guest: guest})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	guest, err := h.Guests.Get(r.Context(), userID, chi.URLParam(r, "guestID"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, guestResponse{Status: "success", Guest: guest})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope guestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Guest

	patch := models.GuestPatch{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Organization: payload.Organization,
		Email:        payload.Email,
	}
	guest, err := h.Guests.Update(r.Context(), userID, chi.URLParam(r, "guestID"), patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, guestResponse{Status: "success", Guest: guest})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if err := h.Guests.Delete(r.Context(), userID, chi.URLParam(r, "guestID")); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondSuccess(w, "guest deleted successfully")
}
