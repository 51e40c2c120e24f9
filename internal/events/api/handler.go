package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guestlist/internal/auth"
	events "guestlist/internal/events/service"
	"guestlist/internal/logger"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
	"guestlist/internal/utils"
)

type Handler struct {
	Events *events.Service
	Logger *logger.Logger
}

func NewHandler(service *events.Service, log *logger.Logger) *Handler {
	return &Handler{Events: service, Logger: log}
}

type eventPayload struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Time     string `json:"time"`
	EvalLink string `json:"eval_link"`
}

type eventEnvelope struct {
	Event eventPayload `json:"event"`
}

type eventResponse struct {
	Status string        `json:"status"`
	Event  *models.Event `json:"event"`
}

type eventListResponse struct {
	Status   string         `json:"status"`
	Previous *string        `json:"previous"`
	Next     *string        `json:"next"`
	Count    int            `json:"count"`
	Events   []models.Event `json:"events"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	page := utils.QueryPage(r)
	q := pagination.NormalizeQuery(utils.QuerySearch(r))

	items, info, err := h.Events.List(r.Context(), userID, page, q)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	previous, next := utils.NavigationLinks(r, q, info)
	if items == nil {
		items = []models.Event{}
	}
	count := info.Total
	if len(items) == 0 {
		count = 0
	}
	utils.RespondJSON(w, http.StatusOK, eventListResponse{
		Status:   "success",
		Previous: previous,
		Next:     next,
		Count:    count,
		Events:   items,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Event

	var start time.Time
	if payload.Time != "" {
		var err error
		if start, err = utils.ParseEventTime(payload.Time); err != nil {
			utils.RespondError(w, err)
			return
		}
	}

	event, err := h.Events.Create(r.Context(), userID, payload.Name, payload.Location, start, payload.EvalLink)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	h.Logger.Info("EVENTS", "created event "+event.Name)
	utils.RespondJSON(w, http.StatusCreated, eventResponse{Status: "success", Event: event})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	event, err := h.Events.Get(r.Context(), userID, chi.URLParam(r, "eventID"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, eventResponse{Status: "success", Event: event})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Event

	patch := models.EventPatch{
		Name:     payload.Name,
		Location: payload.Location,
		EvalLink: payload.EvalLink,
	}
	if payload.Time != "" {
		t, err := utils.ParseEventTime(payload.Time)
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		patch.Time = t
	}

	event, err := h.Events.Update(r.Context(), userID, chi.URLParam(r, "eventID"), patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, eventResponse{Status: "success", Event: event})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if err := h.Events.Delete(r.Context(), userID, chi.URLParam(r, "eventID")); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondSuccess(w, "event deleted successfully")
}
