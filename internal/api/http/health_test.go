package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	do := func(t *testing.T, h *HealthHandler, path string) HealthResponse {
		t.Helper()
		r := gin.New()
		h.RegisterRoutes(r)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("reports disabled backends when nothing is wired", func(t *testing.T) {
		h := NewHealthHandler("onemeal-backend", "1.0.0", nil, nil)

		resp := do(t, h, "/health")
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "onemeal-backend", resp.Service)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Equal(t, "disabled", resp.Store)
		assert.Equal(t, "disabled", resp.Cache)
	})

	t.Run("pings a wired cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		h := NewHealthHandler("onemeal-backend", "1.0.0", nil, client)

		resp := do(t, h, "/healthz")
		assert.Equal(t, "up", resp.Cache)

		mr.Close()
		resp = do(t, h, "/healthz")
		assert.Equal(t, "down", resp.Cache)
	})
}
