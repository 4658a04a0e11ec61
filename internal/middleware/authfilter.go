package middleware

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/teamcal/calendar-api/internal/model"
    "github.com/teamcal/calendar-api/internal/utils"
)

// UserSource is the subset of the user repository the authenticator needs.
type UserSource interface {
    GetByID(ctx context.Context, id uint64) (model.User, error)
    GetByAPIKey(ctx context.Context, apiKey string) (model.User, error)
}

// authTokens is the credential pair extracted from one request: the
// long-lived API key and the short-lived access token.
type authTokens struct {
    apiKey      string
    accessToken string
}

// TokenAuthenticator resolves a user from the credential pair carried by a
// request, refreshing the access token via the API key when it has expired.
type TokenAuthenticator struct {
    Users        UserSource
    JWTSecret    string
    AccessTTLMin int
}

func NewTokenAuthenticator(users UserSource, secret string, ttlMin int) *TokenAuthenticator {
    return &TokenAuthenticator{Users: users, JWTSecret: secret, AccessTTLMin: ttlMin}
}

// Authenticate resolves the user for this request. It returns false when no
// usable credentials are present or neither token resolves to a user; the
// request then proceeds unauthenticated. On the refresh path it writes the
// new Authorization header and accessToken cookie to the response.
func (a *TokenAuthenticator) Authenticate(c echo.Context) (model.User, bool) {
    tokens, ok := tokensFromRequest(c)
    if !ok {
        return model.User{}, false
    }

    ctx := c.Request().Context()

    // Direct path: a valid access token authenticates without any side effect.
    if uid, err := utils.ParseAccessToken(a.JWTSecret, tokens.accessToken); err == nil {
        if u, err := a.Users.GetByID(ctx, uid); err == nil {
            return u, true
        }
    }

    // Refresh path: the access token failed, fall back to the API key.
    u, err := a.Users.GetByAPIKey(ctx, tokens.apiKey)
    if err != nil {
        return model.User{}, false
    }
    access, err := utils.NewAccessToken(a.JWTSecret, u.ID, a.AccessTTLMin)
    if err != nil {
        return model.User{}, false
    }
    c.Response().Header().Set("Authorization", "Bearer "+u.APIKey+" "+access.Token)
    c.SetCookie(&http.Cookie{
        Name:     "accessToken",
        Value:    access.Token,
        Path:     "/",
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
        Expires:  access.Exp,
    })
    return u, true
}

// tokensFromRequest extracts the credential pair. The Authorization header
// wins: once any Authorization header is present, cookies are never
// consulted, so a malformed header leaves the request unauthenticated.
// Without a header, both the apiKey and accessToken cookies are required.
func tokensFromRequest(c echo.Context) (authTokens, bool) {
    auth := c.Request().Header.Get("Authorization")
    if auth != "" {
        if !strings.HasPrefix(auth, "Bearer ") {
            return authTokens{}, false
        }
        bits := strings.SplitN(strings.TrimPrefix(auth, "Bearer "), " ", 2)
        if len(bits) != 2 || bits[0] == "" || bits[1] == "" {
            return authTokens{}, false
        }
        return authTokens{apiKey: bits[0], accessToken: bits[1]}, true
    }

    apiKey, err := c.Cookie("apiKey")
    if err != nil {
        return authTokens{}, false
    }
    accessToken, err := c.Cookie("accessToken")
    if err != nil {
        return authTokens{}, false
    }
    return authTokens{apiKey: apiKey.Value, accessToken: accessToken.Value}, true
}

// AuthFilter gates every request exactly once. Paths outside the API prefix
// and the exact-match allow list skip token resolution entirely. The filter
// never rejects a request itself; operations that need an actor enforce that
// downstream.
func AuthFilter(a *TokenAuthenticator, apiPrefix string, skipPaths ...string) echo.MiddlewareFunc {
    skip := make(map[string]bool, len(skipPaths))
    for _, p := range skipPaths {
        skip[p] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            path := c.Request().URL.Path
            if !strings.HasPrefix(path, apiPrefix) || skip[path] {
                return next(c)
            }
            if u, ok := a.Authenticate(c); ok {
                SetActor(c, u)
            }
            return next(c)
        }
    }
}
