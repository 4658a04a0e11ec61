// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service package to distinguish between different failure scenarios
// without inspecting SQL driver errors. For example, ErrCalendarNotFound
// lets the schedule service report a missing calendar before any
// ownership check runs.
package repository

import "errors"

// ErrUserNotFound is returned when no active user matches the lookup.
// Soft deleted users are treated as absent.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registration collides with an
// existing email address.
var ErrEmailExists = errors.New("email already exists")

// ErrCalendarNotFound is returned when a calendar id has no row.
var ErrCalendarNotFound = errors.New("calendar not found")

// ErrScheduleNotFound is returned when a schedule id has no row.
var ErrScheduleNotFound = errors.New("schedule not found")
