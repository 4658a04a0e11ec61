package middleware

// actor.go holds the per-request actor cell. The authentication filter
// stores the resolved user here and handlers read it back; nothing is
// shared across requests because the value lives on the echo.Context.

import (
    "github.com/labstack/echo/v4"

    "github.com/teamcal/calendar-api/internal/model"
)

const actorContextKey = "actor"

// SetActor records the authenticated user for the remainder of this
// request's processing.
func SetActor(c echo.Context, u model.User) {
    c.Set(actorContextKey, u)
}

// ActorFrom returns the resolved actor for this request, if any.
func ActorFrom(c echo.Context) (model.User, bool) {
    u, ok := c.Get(actorContextKey).(model.User)
    return u, ok
}
