package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   0,
	})
}

func TestHandleHealth(t *testing.T) {
	store := setupStore(t, ":memory:")

	tests := []struct {
		name       string
		rdb        *redis.Client
		wantStatus int
		wantRedis  string
	}{
		{
			name:       "no redis configured",
			rdb:        nil,
			wantStatus: http.StatusOK,
			wantRedis:  "",
		},
		{
			name:       "store ok redis down",
			rdb:        deadRedis(),
			wantStatus: http.StatusServiceUnavailable,
			wantRedis:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handleHealth(slog.Default(), store, tt.rdb)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got := body["store"].Status; got != "ok" {
				t.Errorf("store = %q, want ok", got)
			}
			if got := body["redis"].Status; got != tt.wantRedis {
				t.Errorf("redis = %q, want %q", got, tt.wantRedis)
			}
		})
	}
}
