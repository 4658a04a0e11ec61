package handler

import (
    "context"              // provides context with cancellation for DB calls
    "errors"               // sentinel comparisons against repository errors
    "net/http"             // HTTP status codes and cookie primitives
    "strconv"              // string-to-int conversion for path params
    "strings"              // string manipulation utilities
    "time"                 // timeouts for DB calls and cookie expiry

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/teamcal/calendar-api/internal/config"     // app configuration
    "github.com/teamcal/calendar-api/internal/model"      // row structs
    "github.com/teamcal/calendar-api/internal/repository" // DB repositories
    "github.com/teamcal/calendar-api/internal/utils"      // token issuing and password helpers
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
type loginResp struct {
	User        userPart  `json:"user"`
	APIKey      string    `json:"api_key"`
	AccessToken string    `json:"access_token"`
	Expires     time.Time `json:"expires"`
}

// Register: create a user; an API key is issued with the row.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respond(c, http.StatusBadRequest, "400-2", "username/email/password required", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return respond(c, http.StatusConflict, "409-1", "email already exists", nil)
		}
		return respond(c, http.StatusInternalServerError, "500-1", "create user failed", nil)
	}

	return respond(c, http.StatusCreated, "201-1", "registered", userPart{ID: uid, Username: req.Username, Email: req.Email})
}

// Login: verify credentials and hand out the credential pair. The pair is
// returned in the body and also set as the Authorization header plus the
// apiKey/accessToken cookies so browser clients authenticate transparently.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid body", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return respond(c, http.StatusBadRequest, "400-2", "email/password required", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return respond(c, http.StatusUnauthorized, "401-2", "invalid credentials", nil)
		}
		return respond(c, http.StatusInternalServerError, "500-1", "query failed", nil)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respond(c, http.StatusUnauthorized, "401-2", "invalid credentials", nil)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "500-1", "issue access failed", nil)
	}

	c.Response().Header().Set("Authorization", "Bearer "+u.APIKey+" "+access.Token)
	setAuthCookie(c, "apiKey", u.APIKey, time.Now().UTC().AddDate(1, 0, 0))
	setAuthCookie(c, "accessToken", access.Token, access.Exp)

	return respond(c, http.StatusOK, "200-1", "logged in", loginResp{
		User:        userPart{ID: u.ID, Username: u.Username, Email: u.Email},
		APIKey:      u.APIKey,
		AccessToken: access.Token,
		Expires:     access.Exp,
	})
}

// Logout: clear both credential cookies. Access tokens simply expire and
// API keys stay valid until rotated, so there is nothing to revoke here.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearAuthCookie(c, "apiKey")
	clearAuthCookie(c, "accessToken")
	return respond(c, http.StatusOK, "200-1", "logged out", nil)
}

// Me: return the authenticated user's information.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, "200-1", "ok", toUserPart(actor))
}

// RotateAPIKey: replace the actor's long-lived credential, invalidating
// every client still holding the old one.
func (h *AuthHandler) RotateAPIKey(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	key, err := h.Users.RotateAPIKey(ctx, actor.ID)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "500-1", "rotate api key failed", nil)
	}
	setAuthCookie(c, "apiKey", key, time.Now().UTC().AddDate(1, 0, 0))
	return respond(c, http.StatusOK, "200-1", "api key rotated", echo.Map{"api_key": key})
}

// DeleteUser: soft-delete the actor's own account.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respond(c, http.StatusBadRequest, "400-1", "invalid id", nil)
	}
	if id != actor.ID {
		return respond(c, http.StatusForbidden, "403-1", "can only delete your own account", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return respond(c, http.StatusNotFound, "404-1", "user not found", nil)
		}
		return respond(c, http.StatusInternalServerError, "500-1", "delete failed", nil)
	}
	clearAuthCookie(c, "apiKey")
	clearAuthCookie(c, "accessToken")
	return respond(c, http.StatusOK, "200-1", "account deleted", toUserPart(actor))
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Username: u.Username, Email: u.Email}
}

func setAuthCookie(c echo.Context, name, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

func clearAuthCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
