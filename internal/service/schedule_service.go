package service

import (
	"context"
	"time"

	"github.com/teamcal/calendar-api/internal/model"
)

// ScheduleService implements schedule operations for a calendar and its
// owner. Every method takes the acting user explicitly; resolving the
// actor from the request is the transport layer's job.
type ScheduleService struct {
	Calendars CalendarStore
	Schedules ScheduleStore
}

func NewScheduleService(cals CalendarStore, scheds ScheduleStore) *ScheduleService {
	return &ScheduleService{Calendars: cals, Schedules: scheds}
}

// ScheduleInput carries the mutable fields of a schedule. Start and end
// are taken as given; the service does not reject start > end.
type ScheduleInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}

// Create attaches a new schedule to a calendar owned by the actor. The
// actor becomes the schedule's author.
func (s *ScheduleService) Create(ctx context.Context, actor model.User, calendarID uint64, in ScheduleInput) (model.Schedule, error) {
	cal, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor)
	if err != nil {
		return model.Schedule{}, err
	}
	sched := model.Schedule{
		CalendarID:  cal.ID,
		UserID:      actor.ID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
	}
	if err := s.Schedules.Create(ctx, &sched); err != nil {
		return model.Schedule{}, err
	}
	return sched, nil
}

// Update rewrites title, description, start, end and location in place.
// Calendar and author are never reassigned.
func (s *ScheduleService) Update(ctx context.Context, actor model.User, calendarID, scheduleID uint64, in ScheduleInput) (model.Schedule, error) {
	sched, err := requireScheduleAuthor(ctx, s.Calendars, s.Schedules, calendarID, scheduleID, actor, "update")
	if err != nil {
		return model.Schedule{}, err
	}
	sched.Title = in.Title
	sched.Description = in.Description
	sched.StartTime = in.StartTime
	sched.EndTime = in.EndTime
	sched.Location = in.Location
	if err := s.Schedules.Update(ctx, &sched); err != nil {
		return model.Schedule{}, err
	}
	return sched, nil
}

// Delete hard-deletes a schedule authored by the actor.
func (s *ScheduleService) Delete(ctx context.Context, actor model.User, calendarID, scheduleID uint64) error {
	if _, err := requireScheduleAuthor(ctx, s.Calendars, s.Schedules, calendarID, scheduleID, actor, "delete"); err != nil {
		return err
	}
	return s.Schedules.Delete(ctx, scheduleID)
}

// GetByID returns a single schedule. Calendar ownership is required but
// schedule authorship is not; any schedule of an owned calendar is
// readable.
func (s *ScheduleService) GetByID(ctx context.Context, actor model.User, calendarID, scheduleID uint64) (model.Schedule, error) {
	return requireScheduleInCalendar(ctx, s.Calendars, s.Schedules, calendarID, scheduleID, actor)
}

// ListByRange returns schedules overlapping the inclusive range from the
// start of startDate to the end of endDate.
func (s *ScheduleService) ListByRange(ctx context.Context, actor model.User, calendarID uint64, startDate, endDate time.Time) ([]model.Schedule, error) {
	if _, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor); err != nil {
		return nil, err
	}
	return s.Schedules.FindByCalendarAndDateRange(ctx, calendarID, dayStart(startDate), dayEnd(endDate))
}

// ListDaily returns schedules overlapping the calendar day of date.
func (s *ScheduleService) ListDaily(ctx context.Context, actor model.User, calendarID uint64, date time.Time) ([]model.Schedule, error) {
	if _, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor); err != nil {
		return nil, err
	}
	start, end := dayRange(date)
	return s.Schedules.FindByCalendarAndDateRange(ctx, calendarID, start, end)
}

// ListWeekly returns schedules overlapping the Sunday-to-Saturday week
// containing date.
func (s *ScheduleService) ListWeekly(ctx context.Context, actor model.User, calendarID uint64, date time.Time) ([]model.Schedule, error) {
	if _, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor); err != nil {
		return nil, err
	}
	start, end := weekRange(date)
	return s.Schedules.FindByCalendarAndDateRange(ctx, calendarID, start, end)
}

// ListMonthly returns schedules overlapping the month containing date.
func (s *ScheduleService) ListMonthly(ctx context.Context, actor model.User, calendarID uint64, date time.Time) ([]model.Schedule, error) {
	if _, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor); err != nil {
		return nil, err
	}
	start, end := monthRange(date)
	return s.Schedules.FindByCalendarAndDateRange(ctx, calendarID, start, end)
}
