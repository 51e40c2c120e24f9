package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guestlist/internal/auth"
	"guestlist/internal/logger"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
	"guestlist/internal/tickets/qr"
	tickets "guestlist/internal/tickets/service"
	"guestlist/internal/utils"
)

type Handler struct {
	Tickets *tickets.Service
	QR      *qr.Generator
	Logger  *logger.Logger
}

func NewHandler(service *tickets.Service, qrGen *qr.Generator, log *logger.Logger) *Handler {
	return &Handler{Tickets: service, QR: qrGen, Logger: log}
}

type ticketPayload struct {
	QRCode   string `json:"qr_code"`
	VVIP     int    `json:"vvip"`
	Accepted int    `json:"accepted"`
	Scanned  int    `json:"scanned"`
	Comments string `json:"comments"`
}

type ticketEnvelope struct {
	Ticket ticketPayload `json:"ticket"`
}

type ticketResponse struct {
	Status string         `json:"status"`
	Ticket *models.Ticket `json:"ticket"`
}

type ticketListResponse struct {
	Status   string          `json:"status"`
	Previous *string         `json:"previous"`
	Next     *string         `json:"next"`
	Count    int             `json:"count"`
	Tickets  []models.Ticket `json:"tickets"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	page := utils.QueryPage(r)
	q := pagination.NormalizeQuery(utils.QuerySearch(r))

	items, info, err := h.Tickets.List(r.Context(), userID, chi.URLParam(r, "eventID"), page, q)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	previous, next := utils.NavigationLinks(r, q, info)
	if items == nil {
		items = []models.Ticket{}
	}
	count := info.Total
	if len(items) == 0 {
		count = 0
	}
	utils.RespondJSON(w, http.StatusOK, ticketListResponse{
		Status:   "success",
		Previous: previous,
		Next:     next,
		Count:    count,
		Tickets:  items,
	})
}

func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope ticketEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Ticket

	ticket, err := h.Tickets.Issue(r.Context(), userID,
		chi.URLParam(r, "eventID"), chi.URLParam(r, "guestID"),
		tickets.TicketFields{
			QRCode:   payload.QRCode,
			VVIP:     payload.VVIP,
			Accepted: payload.Accepted,
			Scanned:  payload.Scanned,
			Comments: payload.Comments,
		})
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	h.Logger.Info("TICKETS", "issued ticket for event "+chi.URLParam(r, "eventID"))
	utils.RespondJSON(w, http.StatusCreated, ticketResponse{Status: "success", Ticket: ticket})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	ticket, err := h.Tickets.Get(r.Context(), userID, chi.URLParam(r, "eventID"), chi.URLParam(r, "ticketID"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ticketResponse{Status: "success", Ticket: ticket})
}

// GetQR renders the ticket's QR code text as a PNG image.
func (h *Handler) GetQR(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	ticket, err := h.Tickets.Get(r.Context(), userID, chi.URLParam(r, "eventID"), chi.URLParam(r, "ticketID"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	png, err := h.QR.PNG(ticket.QRCode)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !utils.RequireJSON(w, r) {
		return
	}
	userID, _ := auth.UserID(r.Context())

	var envelope ticketEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "failed", "invalid request body")
		return
	}
	payload := envelope.Ticket

	ticket, err := h.Tickets.Update(r.Context(), userID,
		chi.URLParam(r, "eventID"), chi.URLParam(r, "ticketID"),
		models.TicketPatch{
			Scanned:  payload.Scanned,
			Accepted: payload.Accepted != 0,
			VVIP:     payload.VVIP != 0,
			Comments: payload.Comments,
		})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ticketResponse{Status: "success", Ticket: ticket})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	err := h.Tickets.Delete(r.Context(), userID, chi.URLParam(r, "eventID"), chi.URLParam(r, "ticketID"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondSuccess(w, "successfully deleted the ticket from event with id "+chi.URLParam(r, "eventID"))
}
