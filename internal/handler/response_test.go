package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamcal/calendar-api/internal/middleware"
	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/repository"
	"github.com/teamcal/calendar-api/internal/service"
)

// stubCalendarStore serves a single calendar, or a fixed error.
type stubCalendarStore struct {
	cal model.Calendar
	err error
}

func (s stubCalendarStore) Create(_ context.Context, _ *model.Calendar) error { return s.err }
func (s stubCalendarStore) GetByID(_ context.Context, _ uint64) (model.Calendar, error) {
	return s.cal, s.err
}
func (s stubCalendarStore) ListByOwner(_ context.Context, _ uint64) ([]model.Calendar, error) {
	return nil, s.err
}
func (s stubCalendarStore) Update(_ context.Context, _ *model.Calendar) error { return s.err }
func (s stubCalendarStore) Delete(_ context.Context, _ uint64) error          { return s.err }

func calendarContext(t *testing.T, actorID uint64, calendarID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/calendars/"+calendarID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("calendarId")
	c.SetParamValues(calendarID)
	if actorID != 0 {
		middleware.SetActor(c, model.User{ID: actorID, Username: "u", Email: "u@example.com"})
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) RsData {
	t.Helper()
	var rs RsData
	if err := json.Unmarshal(rec.Body.Bytes(), &rs); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return rs
}

func TestProtectedOperationWithoutActorUnauthorized(t *testing.T) {
	t.Parallel()

	h := NewCalendarHandler(service.NewCalendarService(stubCalendarStore{}))
	c, rec := calendarContext(t, 0, "1")

	if err := h.GetCalendar(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	rs := decodeEnvelope(t, rec)
	if rs.ResultCode != "401-1" {
		t.Fatalf("resultCode = %q, want 401-1", rs.ResultCode)
	}
	if rs.Data != nil {
		t.Fatalf("data should be omitted, got %v", rs.Data)
	}
}

func TestServiceErrorsTranslateToEnvelope(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		store      stubCalendarStore
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing calendar",
			store:      stubCalendarStore{err: repository.ErrCalendarNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "404-1",
		},
		{
			name:       "foreign calendar",
			store:      stubCalendarStore{cal: model.Calendar{ID: 5, UserID: 2, Name: "theirs"}},
			wantStatus: http.StatusForbidden,
			wantCode:   "403-1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCalendarHandler(service.NewCalendarService(tc.store))
			c, rec := calendarContext(t, 1, "5")

			if err := h.GetCalendar(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if rs := decodeEnvelope(t, rec); rs.ResultCode != tc.wantCode {
				t.Fatalf("resultCode = %q, want %q", rs.ResultCode, tc.wantCode)
			}
		})
	}
}

func TestSuccessEnvelopeCarriesData(t *testing.T) {
	t.Parallel()

	store := stubCalendarStore{cal: model.Calendar{
		ID: 5, UserID: 1, Name: "work", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}
	h := NewCalendarHandler(service.NewCalendarService(store))
	c, rec := calendarContext(t, 1, "5")

	if err := h.GetCalendar(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	rs := decodeEnvelope(t, rec)
	if rs.ResultCode != "200-1" {
		t.Fatalf("resultCode = %q, want 200-1", rs.ResultCode)
	}
	data, ok := rs.Data.(map[string]any)
	if !ok || data["name"] != "work" {
		t.Fatalf("data = %v, want calendar payload", rs.Data)
	}
}
