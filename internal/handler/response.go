package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamcal/calendar-api/internal/middleware"
	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/service"
)

// RsData is the response envelope shared by every endpoint. ResultCode is
// "<httpStatus>-<subcode>"; Data is omitted when there is no payload.
type RsData struct {
	ResultCode string `json:"resultCode"`
	Msg        string `json:"msg"`
	Data       any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, code, msg string, data any) error {
	return c.JSON(status, RsData{ResultCode: code, Msg: msg, Data: data})
}

// fail translates a service failure into the wire envelope. Anything that
// is not a typed service error becomes an opaque 500.
func fail(c echo.Context, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		return c.JSON(se.Status, RsData{ResultCode: se.Code, Msg: se.Msg})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, RsData{ResultCode: "500-1", Msg: "internal server error"})
}

// requireActor reads the actor the auth filter resolved for this request.
// Operations that need one fail with 401 before touching the service.
func requireActor(c echo.Context) (model.User, error) {
	u, ok := middleware.ActorFrom(c)
	if !ok {
		return model.User{}, service.ErrUnauthorized
	}
	return u, nil
}
