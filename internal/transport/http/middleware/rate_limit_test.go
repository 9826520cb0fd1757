package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type fakeRateLimitStore struct {
	trimErr   error
	count     int
	countErr  error
	oldest    time.Time
	hasOldest bool
	oldestErr error
	recordErr error

	recordedKey string
	recordCalls int
}

func (f *fakeRateLimitStore) TrimWindow(_ context.Context, _ string, _ time.Duration, _ time.Time) error {
	return f.trimErr
}

func (f *fakeRateLimitStore) CountAttempts(_ context.Context, _ string, _ time.Duration, _ time.Time) (int, error) {
	return f.count, f.countErr
}

func (f *fakeRateLimitStore) RecordAttempt(_ context.Context, identifier string, _ time.Time) error {
	f.recordedKey = identifier
	f.recordCalls++
	return f.recordErr
}

func (f *fakeRateLimitStore) OldestAttempt(_ context.Context, _ string, _ time.Duration, _ time.Time) (time.Time, bool, error) {
	return f.oldest, f.hasOldest, f.oldestErr
}

func limiterRouter(t *testing.T, store RateLimitStore, now time.Time, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(store, zaptest.NewLogger(t)).WithClock(func() time.Time { return now })

	router := gin.New()
	router.Use(limiter.RateLimit(RateLimitRule{
		Name:   "sign_in",
		Limit:  limit,
		Window: time.Minute,
		Identifier: func(c *gin.Context) (string, bool) {
			return "192.0.2.1", true
		},
	}))
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiter_AllowsBelowLimit(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	oldest := now.Add(-30 * time.Second)

	store := &fakeRateLimitStore{
		count:     2,
		oldest:    oldest,
		hasOldest: true,
	}

	router := limiterRouter(t, store, now, 5)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if store.recordCalls != 1 {
		t.Fatalf("expected 1 recorded attempt, got %d", store.recordCalls)
	}
	if store.recordedKey != "sign_in:192.0.2.1" {
		t.Fatalf("unexpected storage key: %q", store.recordedKey)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Fatalf("expected remaining 2, got %q", got)
	}
	wantReset := strconv.FormatInt(oldest.Add(time.Minute).Unix(), 10)
	if got := rr.Header().Get("X-RateLimit-Reset"); got != wantReset {
		t.Fatalf("expected reset %s, got %q", wantReset, got)
	}
}

func TestRateLimiter_BlocksAtLimit(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	store := &fakeRateLimitStore{
		count:     5,
		oldest:    now.Add(-20 * time.Second),
		hasOldest: true,
	}

	router := limiterRouter(t, store, now, 5)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if store.recordCalls != 0 {
		t.Fatal("blocked request must not record an attempt")
	}
	if got := rr.Header().Get("Retry-After"); got != "40" {
		t.Fatalf("expected Retry-After 40, got %q", got)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &problem); err != nil {
		t.Fatalf("unmarshal problem details: %v", err)
	}
	if problem.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected problem status: %d", problem.Status)
	}
	if problem.RetryAfter != 40 {
		t.Fatalf("unexpected retry_after: %d", problem.RetryAfter)
	}
}

func TestRateLimiter_StoreFailureFailsOpen(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	store := &fakeRateLimitStore{countErr: context.DeadlineExceeded}

	router := limiterRouter(t, store, now, 5)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("store failure must not block the request, got %d", rr.Code)
	}
}
