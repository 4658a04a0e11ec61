package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/teamcal/calendar-api/internal/config"
	"github.com/teamcal/calendar-api/internal/model"
)

func newCacheFixture(t *testing.T) (echo.MiddlewareFunc, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}
	return NewRedisCache(cfg, rdb), rdb
}

// ownedResource enforces that only user 1 may read it, and simulates the
// auth filter's refresh side effects on the owner's request.
func ownedResource(calls *int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*calls++
		actor, ok := ActorFrom(c)
		if !ok || actor.ID != 1 {
			return c.JSON(http.StatusForbidden, echo.Map{"resultCode": "403-1"})
		}
		c.Response().Header().Set("Authorization", "Bearer owner-key owner-fresh-token")
		c.SetCookie(&http.Cookie{Name: "accessToken", Value: "owner-fresh-token", Path: "/"})
		return c.JSON(http.StatusOK, echo.Map{"owner": 1, "schedules": []string{"standup"}})
	}
}

func cacheRequest(t *testing.T, mw echo.MiddlewareFunc, h echo.HandlerFunc, actorID uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/calendars/1/schedules/daily?date=2024-03-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actorID != 0 {
		SetActor(c, model.User{ID: actorID})
	}
	if err := mw(h)(c); err != nil {
		t.Fatalf("cache middleware: %v", err)
	}
	return rec
}

func TestCacheEntriesScopedToActor(t *testing.T) {
	t.Parallel()

	mw, _ := newCacheFixture(t)
	calls := 0
	h := ownedResource(&calls)

	first := cacheRequest(t, mw, h, 1)
	if first.Code != http.StatusOK || first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("owner first request: status=%d xcache=%q", first.Code, first.Header().Get("X-Cache"))
	}

	// A different user hitting the same URL must reach the handler and be
	// rejected there, not be served the owner's cached payload.
	stranger := cacheRequest(t, mw, h, 2)
	if stranger.Header().Get("X-Cache") == "HIT" {
		t.Fatal("stranger served from owner's cache entry")
	}
	if stranger.Code != http.StatusForbidden {
		t.Fatalf("stranger status = %d, want 403", stranger.Code)
	}
	if strings.Contains(stranger.Body.String(), "standup") {
		t.Fatalf("stranger received owner data: %s", stranger.Body.String())
	}
	if stranger.Header().Get("Authorization") != "" {
		t.Fatalf("stranger received credentials: %q", stranger.Header().Get("Authorization"))
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func TestCacheHitNeverReplaysCredentials(t *testing.T) {
	t.Parallel()

	mw, _ := newCacheFixture(t)
	calls := 0
	h := ownedResource(&calls)

	// First request stores the entry while the response carries refresh
	// credentials; the hit must serve the body without them.
	cacheRequest(t, mw, h, 1)
	hit := cacheRequest(t, mw, h, 1)

	if hit.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second owner request xcache = %q, want HIT", hit.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
	if !strings.Contains(hit.Body.String(), "standup") {
		t.Fatalf("cached body missing: %s", hit.Body.String())
	}
	if got := hit.Header().Get("Authorization"); got != "" {
		t.Fatalf("cached response replayed Authorization %q", got)
	}
	if cookies := hit.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("cached response replayed cookies: %v", cookies)
	}
}

func TestCacheBypassedWithoutActor(t *testing.T) {
	t.Parallel()

	mw, rdb := newCacheFixture(t)
	calls := 0
	h := ownedResource(&calls)

	for i := 0; i < 2; i++ {
		rec := cacheRequest(t, mw, h, 0)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("unauthenticated status = %d, want 403", rec.Code)
		}
		if got := rec.Header().Get("X-Cache"); got != "" {
			t.Fatalf("unauthenticated request touched cache: X-Cache=%q", got)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
	if keys, err := rdb.Keys(context.Background(), "cache:*").Result(); err != nil || len(keys) != 0 {
		t.Fatalf("unauthenticated requests stored entries: %v (err=%v)", keys, err)
	}
}
