package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/allocatr/psa-api/internal/service"
)

const catalogCacheKey = "psa:catalog:projects"

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CatalogCache serves the public project listing from Redis when a fresh
// copy exists. Only the catalog read goes through here; registration and
// user paths are never cached so their check-then-act behavior stays
// exactly as the database sees it.
func CatalogCache(client *redis.Client, ttl time.Duration, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		cached, err := client.Get(c.Request.Context(), catalogCacheKey).Bytes()
		if err == nil {
			metrics.RecordCacheLookup(true)
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}
		metrics.RecordCacheLookup(false)

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if c.Writer.Status() == http.StatusOK && recorder.body.Len() > 0 {
			_ = client.Set(c.Request.Context(), catalogCacheKey, recorder.body.Bytes(), ttl).Err()
		}
	}
}

// InvalidateCatalogCache drops the cached listing after catalog mutations.
func InvalidateCatalogCache(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if client == nil || c.Writer.Status() >= 400 {
			return
		}
		_ = client.Del(c.Request.Context(), catalogCacheKey).Err()
	}
}
