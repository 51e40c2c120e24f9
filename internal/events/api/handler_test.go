package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"guestlist/internal/auth"
	eventsdb "guestlist/internal/events/db"
	events "guestlist/internal/events/service"
	"guestlist/internal/logger"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
)

// newTestRouter builds the event routes over an in-memory store, with a stub
// middleware that plants the given user id the way the auth middleware would.
func newTestRouter(t *testing.T, userID int64) (*chi.Mux, *eventsdb.DB) {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	err = bunDB.ResetModel(context.Background(), (*models.User)(nil), (*models.Event)(nil))
	require.NoError(t, err)

	db := &eventsdb.DB{Bun: bunDB}
	handler := NewHandler(events.NewService(db, pagination.New(4)), logger.New())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Get("/v1/events/", handler.List)
	r.Post("/v1/events/", handler.Create)
	r.Get("/v1/events/{eventID}", handler.Get)
	r.Put("/v1/events/{eventID}", handler.Update)
	r.Delete("/v1/events/{eventID}", handler.Delete)
	return r, db
}

func postEvent(t *testing.T, r http.Handler, name string) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"event":{"name":%q,"location":"7 Bayview Yards","time":"2026-05-22 10:00:00"}}`, name)
	req := httptest.NewRequest(http.MethodPost, "/v1/events/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["event"].(map[string]interface{})
}

func TestCreateEventRequiresJSONContentType(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	req := httptest.NewRequest(http.MethodPost, "/v1/events/", bytes.NewBufferString("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCreateEventRejectsMissingFields(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	req := httptest.NewRequest(http.MethodPost, "/v1/events/", bytes.NewBufferString(`{"event":{"name":"x"}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEventDistinguishesInvalidIDFromMissing(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/events/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/events/12345", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEventIsOwnershipScoped(t *testing.T) {
	r, db := newTestRouter(t, 2)

	// An event created by user 1 directly in the store.
	event := &models.Event{Name: "Private", Location: "HQ", UserID: 1}
	require.NoError(t, db.CreateEvent(context.Background(), event))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/events/%d", event.ID), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Same status and envelope a nonexistent id produces.
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEventsEmptyPageIsValid(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/events/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string           `json:"status"`
		Previous *string          `json:"previous"`
		Next     *string          `json:"next"`
		Count    int              `json:"count"`
		Events   []map[string]any `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Nil(t, resp.Previous)
	require.Nil(t, resp.Next)
	require.Zero(t, resp.Count)
	require.NotNil(t, resp.Events)
}

func TestListEventsPaginationLinks(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	// Page size is 4; ten events means three pages.
	for i := 0; i < 10; i++ {
		postEvent(t, r, fmt.Sprintf("Event %d", i))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/events/?page=2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp struct {
		Previous *string          `json:"previous"`
		Next     *string          `json:"next"`
		Count    int              `json:"count"`
		Events   []map[string]any `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 10, resp.Count)
	require.Len(t, resp.Events, 4)
	require.NotNil(t, resp.Previous)
	require.Contains(t, *resp.Previous, "page=1")
	require.NotNil(t, resp.Next)
	require.Contains(t, *resp.Next, "page=3")

	// The final page advertises no next link.
	req = httptest.NewRequest(http.MethodGet, "/v1/events/?page=3", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	require.Nil(t, resp.Next)
}

func TestListEventsSearchCarriesThroughLinks(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	for i := 0; i < 6; i++ {
		postEvent(t, r, fmt.Sprintf("Summit %d", i))
	}
	postEvent(t, r, "Unrelated")

	req := httptest.NewRequest(http.MethodGet, "/v1/events/?q=SUMMIT&page=1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp struct {
		Next  *string `json:"next"`
		Count int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 6, resp.Count)
	require.NotNil(t, resp.Next)
	require.Contains(t, *resp.Next, "q=summit")
}

func TestUpdateEventPartialPatch(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	created := postEvent(t, r, "Original")
	id := int64(created["event_id"].(float64))

	body := `{"event":{"location":"New Venue"}}`
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/v1/events/%d", id), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Original", resp["event"]["event_name"])
	require.Equal(t, "New Venue", resp["event"]["event_location"])
}

func TestUpdateEventEmptyPatchRejected(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	created := postEvent(t, r, "Original")
	id := int64(created["event_id"].(float64))

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/v1/events/%d", id), bytes.NewBufferString(`{"event":{}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEvent(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	created := postEvent(t, r, "Doomed")
	id := int64(created["event_id"].(float64))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/v1/events/%d", id), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/events/%d", id), nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
