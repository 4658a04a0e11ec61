package service

import (
	"context"

	"github.com/teamcal/calendar-api/internal/model"
)

// CalendarService implements calendar CRUD for an owning user.
type CalendarService struct {
	Calendars CalendarStore
}

func NewCalendarService(cals CalendarStore) *CalendarService {
	return &CalendarService{Calendars: cals}
}

// CalendarInput carries the mutable fields of a calendar.
type CalendarInput struct {
	Name        string
	Description string
}

// Create makes a new calendar owned by the actor.
func (s *CalendarService) Create(ctx context.Context, actor model.User, in CalendarInput) (model.Calendar, error) {
	cal := model.Calendar{
		UserID:      actor.ID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.Calendars.Create(ctx, &cal); err != nil {
		return model.Calendar{}, err
	}
	return cal, nil
}

// List returns all calendars owned by the actor.
func (s *CalendarService) List(ctx context.Context, actor model.User) ([]model.Calendar, error) {
	return s.Calendars.ListByOwner(ctx, actor.ID)
}

// Get returns one calendar owned by the actor.
func (s *CalendarService) Get(ctx context.Context, actor model.User, calendarID uint64) (model.Calendar, error) {
	return requireCalendarOwner(ctx, s.Calendars, calendarID, actor)
}

// Update rewrites name and description of an owned calendar.
func (s *CalendarService) Update(ctx context.Context, actor model.User, calendarID uint64, in CalendarInput) (model.Calendar, error) {
	cal, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor)
	if err != nil {
		return model.Calendar{}, err
	}
	cal.Name = in.Name
	cal.Description = in.Description
	if err := s.Calendars.Update(ctx, &cal); err != nil {
		return model.Calendar{}, err
	}
	return cal, nil
}

// Delete removes an owned calendar.
func (s *CalendarService) Delete(ctx context.Context, actor model.User, calendarID uint64) error {
	if _, err := requireCalendarOwner(ctx, s.Calendars, calendarID, actor); err != nil {
		return err
	}
	return s.Calendars.Delete(ctx, calendarID)
}
