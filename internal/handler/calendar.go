package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/service"
)

// CalendarHandler exposes calendar CRUD for the authenticated owner.
type CalendarHandler struct {
	Calendars *service.CalendarService
}

func NewCalendarHandler(s *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{Calendars: s}
}

type calendarReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type calendarDto struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCalendarDto(cal model.Calendar) calendarDto {
	return calendarDto{
		ID:          cal.ID,
		UserID:      cal.UserID,
		Name:        cal.Name,
		Description: cal.Description,
		CreatedAt:   cal.CreatedAt,
		UpdatedAt:   cal.UpdatedAt,
	}
}

// CreateCalendar handles POST /api/calendars.
func (h *CalendarHandler) CreateCalendar(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req calendarReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respond(c, http.StatusBadRequest, "400-2", "name is required", nil)
	}
	cal, err := h.Calendars.Create(c.Request().Context(), actor, service.CalendarInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, "201-1", "calendar created", toCalendarDto(cal))
}

// ListCalendars handles GET /api/calendars.
func (h *CalendarHandler) ListCalendars(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	cals, err := h.Calendars.List(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	items := make([]calendarDto, 0, len(cals))
	for _, cal := range cals {
		items = append(items, toCalendarDto(cal))
	}
	return respond(c, http.StatusOK, "200-1", "ok", items)
}

// GetCalendar handles GET /api/calendars/:calendarId.
func (h *CalendarHandler) GetCalendar(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	cal, err := h.Calendars.Get(c.Request().Context(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "ok", toCalendarDto(cal))
}

// UpdateCalendar handles PUT /api/calendars/:calendarId.
func (h *CalendarHandler) UpdateCalendar(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	var req calendarReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respond(c, http.StatusBadRequest, "400-2", "name is required", nil)
	}
	cal, err := h.Calendars.Update(c.Request().Context(), actor, id, service.CalendarInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "calendar updated", toCalendarDto(cal))
}

// DeleteCalendar handles DELETE /api/calendars/:calendarId.
func (h *CalendarHandler) DeleteCalendar(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	if err := h.Calendars.Delete(c.Request().Context(), actor, id); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "calendar deleted", nil)
}

func calendarIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("calendarId"), 10, 64)
}
