package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/teamcal/calendar-api/internal/model"
)

const scheduleColumns = "id,calendar_id,user_id,title,description,start_time,end_time,location,created_at,updated_at"

// ScheduleRepo manages persistence for schedules. Time columns are
// DATETIME(6) stored in UTC (the connection uses loc=UTC).
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// Create inserts a schedule and populates generated fields.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO schedules (calendar_id, user_id, title, description, start_time, end_time, location) VALUES (?,?,?,?,?,?,?)",
		s.CalendarID, s.UserID, s.Title, s.Description, s.StartTime.UTC(), s.EndTime.UTC(), s.Location)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedules WHERE id=?", s.ID).Scan(
		&s.ID, &s.CalendarID, &s.UserID, &s.Title, &s.Description,
		&s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a schedule by id.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (model.Schedule, error) {
	var s model.Schedule
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedules WHERE id=? LIMIT 1", id).Scan(
		&s.ID, &s.CalendarID, &s.UserID, &s.Title, &s.Description,
		&s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Schedule{}, ErrScheduleNotFound
	}
	return s, err
}

// Update rewrites the mutable fields of a schedule. Calendar and author
// columns are never touched.
func (r *ScheduleRepo) Update(ctx context.Context, s *model.Schedule) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE schedules SET title=?, description=?, start_time=?, end_time=?, location=? WHERE id=?",
		s.Title, s.Description, s.StartTime.UTC(), s.EndTime.UTC(), s.Location, s.ID)
	return err
}

// Delete removes a schedule row by id.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM schedules WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// FindByCalendarAndDateRange returns schedules of one calendar that overlap
// the inclusive [start, end] range, ordered stably by start time then id.
func (r *ScheduleRepo) FindByCalendarAndDateRange(ctx context.Context, calendarID uint64, start, end time.Time) ([]model.Schedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedules WHERE calendar_id=? AND start_time<=? AND end_time>=? ORDER BY start_time, id",
		calendarID, end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Schedule{}
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.CalendarID, &s.UserID, &s.Title, &s.Description,
			&s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
