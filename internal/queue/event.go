// Package queue defines message payloads exchanged over the message broker
// together with their publisher and background consumer.
package queue

// Schedule event actions.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
    ActionDeleted = "deleted"
)

// ScheduleEvent is published whenever a schedule is created, updated or
// deleted. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ScheduleEvent struct {
    Action     string `json:"action"`
    ScheduleID uint64 `json:"schedule_id"`
    CalendarID uint64 `json:"calendar_id"`
    UserID     uint64 `json:"user_id"`
    Title      string `json:"title"`
    StartsAt   string `json:"starts_at"`
    EndsAt     string `json:"ends_at"`
    OccurredAt string `json:"occurred_at"`
}
