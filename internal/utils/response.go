package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"guestlist/internal/domain"
	"guestlist/internal/pagination"
)

// StatusResponse is the plain status/message envelope used for failures and
// simple confirmations.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func RespondMessage(w http.ResponseWriter, status int, statusText, message string) {
	RespondJSON(w, status, StatusResponse{Status: statusText, Message: message})
}

func RespondSuccess(w http.ResponseWriter, message string) {
	RespondMessage(w, http.StatusOK, "success", message)
}

// RespondError maps a domain error onto its HTTP status and the plain failure
// envelope. Unrecognized errors are reported as a generic internal failure so
// store details never leak to clients.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		RespondMessage(w, http.StatusBadRequest, "failed", "please provide a valid id")
	case errors.Is(err, domain.ErrNotFound):
		RespondMessage(w, http.StatusNotFound, "failed", err.Error())
	case errors.Is(err, domain.ErrDuplicateTicket):
		RespondMessage(w, http.StatusConflict, "failed", err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoChange),
		errors.Is(err, domain.ErrEmailExists):
		RespondMessage(w, http.StatusBadRequest, "failed", err.Error())
	default:
		RespondMessage(w, http.StatusInternalServerError, "failed", "internal server error")
	}
}

// RequireJSON rejects requests whose content type is not JSON before any
// payload reaches the core.
func RequireJSON(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		RespondMessage(w, http.StatusUnsupportedMediaType, "failed", "content-type must be application/json")
		return false
	}
	return true
}

// QueryPage reads the 1-based `page` query parameter, defaulting to 1.
// Malformed values fall back to the default rather than erroring.
func QueryPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// QuerySearch reads the optional `q` search parameter.
func QuerySearch(r *http.Request) string {
	return r.URL.Query().Get("q")
}

// NavigationLinks builds the absolute previous/next page URLs for a list
// response from the original request, carrying the search term through. A nil
// pointer means the neighbouring page does not exist.
func NavigationLinks(r *http.Request, q string, info pagination.Info) (previous, next *string) {
	if info.HasPrev {
		previous = pageURL(r, q, info.PrevPage)
	}
	if info.HasNext {
		next = pageURL(r, q, info.NextPage)
	}
	return previous, next
}

func pageURL(r *http.Request, q string, page int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	values := url.Values{}
	if q != "" {
		values.Set("q", q)
	}
	values.Set("page", strconv.Itoa(page))
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: values.Encode()}
	s := u.String()
	return &s
}
