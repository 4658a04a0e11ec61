package service

import (
	"context"
	"time"

	"github.com/teamcal/calendar-api/internal/model"
)

// CalendarStore is the slice of the calendar repository the services need.
// The MySQL repository satisfies it in production; tests use in-memory
// fakes so authorization logic runs without a database.
type CalendarStore interface {
	Create(ctx context.Context, cal *model.Calendar) error
	GetByID(ctx context.Context, id uint64) (model.Calendar, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Calendar, error)
	Update(ctx context.Context, cal *model.Calendar) error
	Delete(ctx context.Context, id uint64) error
}

// ScheduleStore is the slice of the schedule repository the services need.
type ScheduleStore interface {
	Create(ctx context.Context, s *model.Schedule) error
	GetByID(ctx context.Context, id uint64) (model.Schedule, error)
	Update(ctx context.Context, s *model.Schedule) error
	Delete(ctx context.Context, id uint64) error
	FindByCalendarAndDateRange(ctx context.Context, calendarID uint64, start, end time.Time) ([]model.Schedule, error)
}
