package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/repository"
	"github.com/teamcal/calendar-api/internal/utils"
)

const testSecret = "test-secret"

type fakeUserSource struct {
	users map[uint64]model.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserSource) GetByAPIKey(_ context.Context, apiKey string) (model.User, error) {
	for _, u := range f.users {
		if u.APIKey == apiKey {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (*TokenAuthenticator, model.User) {
	t.Helper()
	u := model.User{ID: 7, Username: "alice", Email: "alice@example.com", APIKey: "key-alice"}
	src := &fakeUserSource{users: map[uint64]model.User{u.ID: u}}
	return NewTokenAuthenticator(src, testSecret, 30), u
}

// runFilter sends one request through the auth filter and reports the
// actor the downstream handler observed.
func runFilter(t *testing.T, a *TokenAuthenticator, mutate func(*http.Request)) (*httptest.ResponseRecorder, model.User, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/calendars", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		actor model.User
		ok    bool
	)
	h := AuthFilter(a, "/api", "/api/users/login", "/api/users/logout")(func(c echo.Context) error {
		actor, ok = ActorFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("filter: %v", err)
	}
	return rec, actor, ok
}

func TestValidAccessTokenAuthenticatesWithoutRefresh(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	access, err := utils.NewAccessToken(testSecret, u.ID, 30)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rec, actor, ok := runFilter(t, a, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+u.APIKey+" "+access.Token)
	})
	if !ok || actor.ID != u.ID {
		t.Fatalf("actor not resolved: ok=%v actor=%+v", ok, actor)
	}
	// No refresh: the response must not carry new credentials.
	if rec.Header().Get("Authorization") != "" {
		t.Fatalf("unexpected refresh header: %q", rec.Header().Get("Authorization"))
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("unexpected refresh cookies: %v", rec.Result().Cookies())
	}
}

func TestExpiredTokenRefreshesViaAPIKey(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	expired, err := utils.NewAccessToken(testSecret, u.ID, -5)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rec, actor, ok := runFilter(t, a, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+u.APIKey+" "+expired.Token)
	})
	if !ok || actor.ID != u.ID {
		t.Fatalf("refresh path did not authenticate: ok=%v actor=%+v", ok, actor)
	}

	hdr := rec.Header().Get("Authorization")
	if !strings.HasPrefix(hdr, "Bearer "+u.APIKey+" ") {
		t.Fatalf("refresh header = %q", hdr)
	}
	newToken := strings.TrimPrefix(hdr, "Bearer "+u.APIKey+" ")
	if uid, err := utils.ParseAccessToken(testSecret, newToken); err != nil || uid != u.ID {
		t.Fatalf("refreshed token invalid: uid=%d err=%v", uid, err)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != newToken {
		t.Fatalf("accessToken cookie not set to refreshed token: %v", cookie)
	}
}

func TestUnknownAPIKeyStaysUnauthenticated(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	expired, _ := utils.NewAccessToken(testSecret, u.ID, -5)

	rec, _, ok := runFilter(t, a, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer nope "+expired.Token)
	})
	if ok {
		t.Fatal("unknown api key authenticated")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("filter rejected request: %d", rec.Code)
	}
}

func TestMalformedHeaderNoCookieFallback(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	access, _ := utils.NewAccessToken(testSecret, u.ID, 30)

	// Valid cookies are present but the malformed header must win: once
	// any Authorization header exists, cookies are never consulted.
	cases := []string{
		"Bearer onlyonepart",
		"Basic something",
		"Bearer ",
	}
	for _, hdr := range cases {
		_, _, ok := runFilter(t, a, func(r *http.Request) {
			r.Header.Set("Authorization", hdr)
			r.AddCookie(&http.Cookie{Name: "apiKey", Value: u.APIKey})
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: access.Token})
		})
		if ok {
			t.Fatalf("header %q fell back to cookies", hdr)
		}
	}
}

func TestCookiePairAuthenticates(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	access, _ := utils.NewAccessToken(testSecret, u.ID, 30)

	_, actor, ok := runFilter(t, a, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "apiKey", Value: u.APIKey})
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: access.Token})
	})
	if !ok || actor.ID != u.ID {
		t.Fatalf("cookie pair did not authenticate: ok=%v", ok)
	}

	// A single cookie is not a usable pair.
	_, _, ok = runFilter(t, a, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "apiKey", Value: u.APIKey})
	})
	if ok {
		t.Fatal("lone apiKey cookie authenticated")
	}
}

func TestSkipPathsBypassTokenResolution(t *testing.T) {
	t.Parallel()

	a, u := newAuthFixture(t)
	expired, _ := utils.NewAccessToken(testSecret, u.ID, -5)

	e := echo.New()
	for _, path := range []string{"/api/users/login", "/healthz"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		// Credentials that would trigger a refresh if the filter ran.
		req.Header.Set("Authorization", "Bearer "+u.APIKey+" "+expired.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := AuthFilter(a, "/api", "/api/users/login", "/api/users/logout")(func(c echo.Context) error {
			if _, ok := ActorFrom(c); ok {
				t.Fatalf("actor set on skipped path %s", path)
			}
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("filter: %v", err)
		}
		if rec.Header().Get("Authorization") != "" {
			t.Fatalf("refresh ran on skipped path %s", path)
		}
	}
}

func TestNoCredentialsProceedsUnauthenticated(t *testing.T) {
	t.Parallel()

	a, _ := newAuthFixture(t)
	rec, _, ok := runFilter(t, a, func(r *http.Request) {})
	if ok {
		t.Fatal("actor resolved without credentials")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("filter rejected request: %d", rec.Code)
	}
}
