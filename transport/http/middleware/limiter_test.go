package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	otelMocks "agenda/infras/otel/mocks"
	"agenda/shared/cache"
	"agenda/shared/cache/mocks"
	"agenda/transport/http/middleware"
)

const clientKey = "limiter:10.0.0.1:agenda-test"

func limited(t *testing.T, enable bool, setupMock func(c *mocks.MockRedisCache)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)
	setupMock(mockCache)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 5
	cfg.App.RateLimiter.WindowSeconds = 60

	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache)

	return mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func request() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/appointments", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 192.168.0.1")
	req.Header.Set("User-Agent", "agenda-test")

	return req
}

func storedCount(n int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*(value.(*int)) = n

		return nil
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		enable    bool
		setupMock func(c *mocks.MockRedisCache)
		code      int
		remaining string
	}{
		{
			name:   "first request in window",
			enable: true,
			setupMock: func(c *mocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), clientKey, gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
				c.EXPECT().Save(gomock.Any(), clientKey, 1, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "4",
		},
		{
			name:   "last allowed request",
			enable: true,
			setupMock: func(c *mocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), clientKey, gomock.Any()).DoAndReturn(storedCount(4))
				c.EXPECT().Save(gomock.Any(), clientKey, 5, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "0",
		},
		{
			name:   "limit exceeded",
			enable: true,
			setupMock: func(c *mocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), clientKey, gomock.Any()).DoAndReturn(storedCount(5))
				c.EXPECT().Save(gomock.Any(), clientKey, 6, 60).Return(nil)
			},
			code: http.StatusTooManyRequests,
		},
		{
			name:   "cache unavailable",
			enable: true,
			setupMock: func(c *mocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), clientKey, gomock.Any()).Return(errors.New("connection refused"))
			},
			code: http.StatusOK,
		},
		{
			name:      "disabled",
			enable:    false,
			setupMock: func(*mocks.MockRedisCache) {},
			code:      http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			limited(t, tt.enable, tt.setupMock).ServeHTTP(rec, request())

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimit_SkipsWebsocketUpgrade(t *testing.T) {
	handler := limited(t, true, func(*mocks.MockRedisCache) {})

	req := request()
	req.Header.Set("Upgrade", "websocket")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
