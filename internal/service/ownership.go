package service

import (
	"context"
	"errors"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/repository"
)

// Ownership checks shared by the calendar and schedule services. The order
// is fixed: existence before ownership before relational checks, so a
// caller probing foreign ids learns nothing beyond "not found".

// requireCalendarOwner returns the calendar when it exists and is owned by
// the actor.
func requireCalendarOwner(ctx context.Context, cals CalendarStore, calendarID uint64, actor model.User) (model.Calendar, error) {
	cal, err := cals.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, repository.ErrCalendarNotFound) {
			return model.Calendar{}, notFound(1, "calendar not found")
		}
		return model.Calendar{}, err
	}
	if cal.UserID != actor.ID {
		return model.Calendar{}, forbidden(1, "only the calendar owner can access it")
	}
	return cal, nil
}

// requireScheduleInCalendar returns the schedule when it exists, the actor
// owns the calendar, and the schedule belongs to that calendar. This is the
// read-level check: schedule authorship is not required.
func requireScheduleInCalendar(ctx context.Context, cals CalendarStore, scheds ScheduleStore, calendarID, scheduleID uint64, actor model.User) (model.Schedule, error) {
	if _, err := requireCalendarOwner(ctx, cals, calendarID, actor); err != nil {
		return model.Schedule{}, err
	}
	s, err := scheds.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return model.Schedule{}, notFound(2, "schedule not found")
		}
		return model.Schedule{}, err
	}
	if s.CalendarID != calendarID {
		return model.Schedule{}, badRequest(1, "schedule does not belong to the requested calendar")
	}
	return s, nil
}

// requireScheduleAuthor extends the read-level check with authorship:
// mutations additionally require that the actor created the schedule.
// The action label names the attempted mutation in the failure message.
func requireScheduleAuthor(ctx context.Context, cals CalendarStore, scheds ScheduleStore, calendarID, scheduleID uint64, actor model.User, action string) (model.Schedule, error) {
	s, err := requireScheduleInCalendar(ctx, cals, scheds, calendarID, scheduleID, actor)
	if err != nil {
		return model.Schedule{}, err
	}
	if s.UserID != actor.ID {
		return model.Schedule{}, forbidden(2, "no permission to "+action+" this schedule")
	}
	return s, nil
}
