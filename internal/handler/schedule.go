package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/queue"
	"github.com/teamcal/calendar-api/internal/service"
)

// ScheduleHandler exposes schedule operations scoped to one calendar.
// Mutations publish a ScheduleEvent to the broker; publish failures are
// ignored so the request never fails because the broker is down.
type ScheduleHandler struct {
	Schedules *service.ScheduleService
}

func NewScheduleHandler(s *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Schedules: s}
}

type scheduleReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
}

func (r scheduleReq) input() service.ScheduleInput {
	return service.ScheduleInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
	}
}

type scheduleDto struct {
	ID          uint64    `json:"id"`
	CalendarID  uint64    `json:"calendar_id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toScheduleDto(s model.Schedule) scheduleDto {
	return scheduleDto{
		ID:          s.ID,
		CalendarID:  s.CalendarID,
		UserID:      s.UserID,
		Title:       s.Title,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toScheduleDtos(ss []model.Schedule) []scheduleDto {
	out := make([]scheduleDto, 0, len(ss))
	for _, s := range ss {
		out = append(out, toScheduleDto(s))
	}
	return out
}

// CreateSchedule handles POST /api/calendars/:calendarId/schedules.
func (h *ScheduleHandler) CreateSchedule(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	sched, err := h.Schedules.Create(c.Request().Context(), actor, calendarID, req.input())
	if err != nil {
		return fail(c, err)
	}
	publishScheduleEvent(c, queue.ActionCreated, sched)
	return respond(c, http.StatusCreated, "201-1", "schedule created", toScheduleDto(sched))
}

// UpdateSchedule handles PUT /api/calendars/:calendarId/schedules/:scheduleId.
func (h *ScheduleHandler) UpdateSchedule(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, scheduleID, err := scheduleParams(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid id", nil)
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	sched, err := h.Schedules.Update(c.Request().Context(), actor, calendarID, scheduleID, req.input())
	if err != nil {
		return fail(c, err)
	}
	publishScheduleEvent(c, queue.ActionUpdated, sched)
	return respond(c, http.StatusOK, "200-1", "schedule updated", toScheduleDto(sched))
}

// DeleteSchedule handles DELETE /api/calendars/:calendarId/schedules/:scheduleId.
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, scheduleID, err := scheduleParams(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid id", nil)
	}
	// Fetch before deleting so the event still carries the schedule fields.
	sched, err := h.Schedules.GetByID(c.Request().Context(), actor, calendarID, scheduleID)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Schedules.Delete(c.Request().Context(), actor, calendarID, scheduleID); err != nil {
		return fail(c, err)
	}
	publishScheduleEvent(c, queue.ActionDeleted, sched)
	return respond(c, http.StatusOK, "200-1", "schedule deleted", nil)
}

// GetSchedule handles GET /api/calendars/:calendarId/schedules/:scheduleId.
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, scheduleID, err := scheduleParams(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid id", nil)
	}
	sched, err := h.Schedules.GetByID(c.Request().Context(), actor, calendarID, scheduleID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "ok", toScheduleDto(sched))
}

// ListSchedules handles GET /api/calendars/:calendarId/schedules with
// explicit startDate and endDate query parameters (YYYY-MM-DD).
func (h *ScheduleHandler) ListSchedules(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	startDate, err := dateQuery(c, "startDate")
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-2", "startDate must be YYYY-MM-DD", nil)
	}
	endDate, err := dateQuery(c, "endDate")
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-2", "endDate must be YYYY-MM-DD", nil)
	}
	items, err := h.Schedules.ListByRange(c.Request().Context(), actor, calendarID, startDate, endDate)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "ok", toScheduleDtos(items))
}

// ListDailySchedules handles GET /api/calendars/:calendarId/schedules/daily?date=.
func (h *ScheduleHandler) ListDailySchedules(c echo.Context) error {
	return h.listByReference(c, h.Schedules.ListDaily)
}

// ListWeeklySchedules handles GET /api/calendars/:calendarId/schedules/weekly?date=.
func (h *ScheduleHandler) ListWeeklySchedules(c echo.Context) error {
	return h.listByReference(c, h.Schedules.ListWeekly)
}

// ListMonthlySchedules handles GET /api/calendars/:calendarId/schedules/monthly?date=.
func (h *ScheduleHandler) ListMonthlySchedules(c echo.Context) error {
	return h.listByReference(c, h.Schedules.ListMonthly)
}

func (h *ScheduleHandler) listByReference(c echo.Context, list func(ctx context.Context, actor model.User, calendarID uint64, date time.Time) ([]model.Schedule, error)) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	calendarID, err := calendarIDParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid calendar id", nil)
	}
	date, err := dateQuery(c, "date")
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-2", "date must be YYYY-MM-DD", nil)
	}
	items, err := list(c.Request().Context(), actor, calendarID, date)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "ok", toScheduleDtos(items))
}

func scheduleParams(c echo.Context) (calendarID, scheduleID uint64, err error) {
	calendarID, err = calendarIDParam(c)
	if err != nil {
		return 0, 0, err
	}
	scheduleID, err = strconv.ParseUint(c.Param("scheduleId"), 10, 64)
	return calendarID, scheduleID, err
}

func dateQuery(c echo.Context, name string) (time.Time, error) {
	return time.Parse("2006-01-02", c.QueryParam(name))
}

func publishScheduleEvent(c echo.Context, action string, s model.Schedule) {
	_ = queue.PublishScheduleEvent(c.Request().Context(), queue.ScheduleEvent{
		Action:     action,
		ScheduleID: s.ID,
		CalendarID: s.CalendarID,
		UserID:     s.UserID,
		Title:      s.Title,
		StartsAt:   s.StartTime.UTC().Format(time.RFC3339),
		EndsAt:     s.EndTime.UTC().Format(time.RFC3339),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
