package model

import "time"

// Calendar represents a row in the `calendars` table. A calendar is
// owned by exactly one user; ownership never changes after creation.
//
// Fields:
//  ID          – primary key identifier of the calendar.
//  UserID      – owning user (immutable).
//  Name        – calendar name.
//  Description – free‑form description.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Calendar struct {
    ID          uint64    // calendars.id
    UserID      uint64    // calendars.user_id
    Name        string    // calendars.name
    Description string    // calendars.description
    CreatedAt   time.Time // calendars.created_at
    UpdatedAt   time.Time // calendars.updated_at
}
