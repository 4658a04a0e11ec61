package model

import "time"

// Schedule represents a row in the `schedules` table. A schedule belongs
// to one calendar and records the user who created it. The creating user
// always equals the calendar owner at write time; the service layer
// enforces this rather than a database constraint.
//
// StartTime and EndTime are stored as DATETIME(6) in UTC so that
// sub‑second range boundaries survive the round trip.
//
// Fields:
//  ID          – primary key identifier of the schedule.
//  CalendarID  – calendar this schedule belongs to.
//  UserID      – user who created the schedule (its author).
//  Title       – short title.
//  Description – free‑form description.
//  StartTime   – instant the schedule begins.
//  EndTime     – instant the schedule ends.
//  Location    – where the schedule takes place.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Schedule struct {
    ID          uint64    // schedules.id
    CalendarID  uint64    // schedules.calendar_id
    UserID      uint64    // schedules.user_id
    Title       string    // schedules.title
    Description string    // schedules.description
    StartTime   time.Time // schedules.start_time
    EndTime     time.Time // schedules.end_time
    Location    string    // schedules.location
    CreatedAt   time.Time // schedules.created_at
    UpdatedAt   time.Time // schedules.updated_at
}
