package repository

import (
	"context"
	"database/sql"

	"github.com/teamcal/calendar-api/internal/model"
)

const calendarColumns = "id,user_id,name,description,created_at,updated_at"

// CalendarRepo manages persistence for calendars.
type CalendarRepo struct{ DB *sql.DB }

func NewCalendarRepo(db *sql.DB) *CalendarRepo { return &CalendarRepo{DB: db} }

// Create inserts a calendar and populates its generated ID.
func (r *CalendarRepo) Create(ctx context.Context, cal *model.Calendar) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO calendars (user_id, name, description) VALUES (?,?,?)",
		cal.UserID, cal.Name, cal.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cal.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+calendarColumns+" FROM calendars WHERE id=?", cal.ID).
		Scan(&cal.ID, &cal.UserID, &cal.Name, &cal.Description, &cal.CreatedAt, &cal.UpdatedAt)
}

// GetByID fetches a calendar by id.
func (r *CalendarRepo) GetByID(ctx context.Context, id uint64) (model.Calendar, error) {
	var cal model.Calendar
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+calendarColumns+" FROM calendars WHERE id=? LIMIT 1", id).
		Scan(&cal.ID, &cal.UserID, &cal.Name, &cal.Description, &cal.CreatedAt, &cal.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Calendar{}, ErrCalendarNotFound
	}
	return cal, err
}

// ListByOwner returns all calendars owned by the given user, oldest first.
func (r *CalendarRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Calendar, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+calendarColumns+" FROM calendars WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Calendar{}
	for rows.Next() {
		var cal model.Calendar
		if err := rows.Scan(&cal.ID, &cal.UserID, &cal.Name, &cal.Description, &cal.CreatedAt, &cal.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cal)
	}
	return out, rows.Err()
}

// Update rewrites name and description of an existing calendar.
func (r *CalendarRepo) Update(ctx context.Context, cal *model.Calendar) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE calendars SET name=?, description=? WHERE id=?",
		cal.Name, cal.Description, cal.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// Zero rows can also mean an identical update; re-check existence so the
	// caller gets a precise error.
	if n == 0 {
		if _, err := r.GetByID(ctx, cal.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a calendar row. Schedules cascade at the database level.
func (r *CalendarRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM calendars WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCalendarNotFound
	}
	return nil
}
