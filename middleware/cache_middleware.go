package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/cache"
	"github.com/m-bouhaba/MindTrack/utils"
)

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheMiddleware caches successful GET responses in Redis, keyed by user and
// URL so one user's stats never leak into another's.
func CacheMiddleware(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		userID := ""
		if user, ok := CurrentUser(c); ok {
			userID = user.ID.String()
		}

		cacheKey := fmt.Sprintf("cache:%s:%s?%s", userID, c.Request.URL.Path, c.Request.URL.RawQuery)

		var cachedResponse cache.CachedResponse
		if err := cache.Get(cacheKey, &cachedResponse); err == nil {
			utils.Logger.Debug("cache_hit", zap.String("key", cacheKey))

			for key, values := range cachedResponse.Headers {
				for _, value := range values {
					c.Header(key, value)
				}
			}
			c.Header("X-Cache", "HIT")

			c.Data(cachedResponse.Status, cachedResponse.ContentType, cachedResponse.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cachedResp := cache.CachedResponse{
				Status:      c.Writer.Status(),
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        blw.body.Bytes(),
				Headers:     c.Writer.Header().Clone(),
			}

			if err := cache.Set(cacheKey, cachedResp, duration); err != nil {
				utils.Logger.Warn("cache_set_failed",
					zap.String("key", cacheKey),
					zap.Error(err),
				)
			}
		}
	}
}

// InvalidateUserCache drops every cached response for a user. Called after
// any mutation (habit CRUD, mood submit, completion toggle) so stats reads
// never serve stale aggregates.
func InvalidateUserCache(userID string) {
	if cache.Client == nil {
		return
	}
	if err := cache.DeletePattern(fmt.Sprintf("cache:%s:*", userID)); err != nil {
		utils.Logger.Warn("cache_invalidate_failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
