package service

import (
	"context"
	"time"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/repository"
)

// In-memory store fakes so the authorization logic runs without a
// database. IDs are assigned sequentially per store.

type fakeCalendarStore struct {
	nextID    uint64
	calendars map[uint64]model.Calendar
}

func newFakeCalendarStore() *fakeCalendarStore {
	return &fakeCalendarStore{nextID: 1, calendars: map[uint64]model.Calendar{}}
}

func (f *fakeCalendarStore) Create(_ context.Context, cal *model.Calendar) error {
	cal.ID = f.nextID
	f.nextID++
	f.calendars[cal.ID] = *cal
	return nil
}

func (f *fakeCalendarStore) GetByID(_ context.Context, id uint64) (model.Calendar, error) {
	cal, ok := f.calendars[id]
	if !ok {
		return model.Calendar{}, repository.ErrCalendarNotFound
	}
	return cal, nil
}

func (f *fakeCalendarStore) ListByOwner(_ context.Context, userID uint64) ([]model.Calendar, error) {
	out := []model.Calendar{}
	for id := uint64(1); id < f.nextID; id++ {
		if cal, ok := f.calendars[id]; ok && cal.UserID == userID {
			out = append(out, cal)
		}
	}
	return out, nil
}

func (f *fakeCalendarStore) Update(_ context.Context, cal *model.Calendar) error {
	if _, ok := f.calendars[cal.ID]; !ok {
		return repository.ErrCalendarNotFound
	}
	f.calendars[cal.ID] = *cal
	return nil
}

func (f *fakeCalendarStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.calendars[id]; !ok {
		return repository.ErrCalendarNotFound
	}
	delete(f.calendars, id)
	return nil
}

type fakeScheduleStore struct {
	nextID    uint64
	schedules map[uint64]model.Schedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{nextID: 1, schedules: map[uint64]model.Schedule{}}
}

func (f *fakeScheduleStore) Create(_ context.Context, s *model.Schedule) error {
	s.ID = f.nextID
	f.nextID++
	f.schedules[s.ID] = *s
	return nil
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id uint64) (model.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return model.Schedule{}, repository.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleStore) Update(_ context.Context, s *model.Schedule) error {
	if _, ok := f.schedules[s.ID]; !ok {
		return repository.ErrScheduleNotFound
	}
	f.schedules[s.ID] = *s
	return nil
}

func (f *fakeScheduleStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.schedules[id]; !ok {
		return repository.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

func (f *fakeScheduleStore) FindByCalendarAndDateRange(_ context.Context, calendarID uint64, start, end time.Time) ([]model.Schedule, error) {
	out := []model.Schedule{}
	for id := uint64(1); id < f.nextID; id++ {
		s, ok := f.schedules[id]
		if !ok || s.CalendarID != calendarID {
			continue
		}
		// Inclusive overlap, mirroring the SQL range query.
		if !s.StartTime.After(end) && !s.EndTime.Before(start) {
			out = append(out, s)
		}
	}
	return out, nil
}
