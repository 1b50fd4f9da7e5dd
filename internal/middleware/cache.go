package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Keys written into the envelope meta of analytics and summary responses.
const (
	MetaCacheHit       = "cache_hit"
	MetaProcessingTime = "processing_time_ms"
)

const responseMetaKey = "campus.response_meta"

type responseMeta struct {
	start  time.Time
	values map[string]interface{}
}

// WithResponseMeta starts the request clock used for processing_time_ms and gives handlers a
// place to record whether a cached analytics payload was served.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, &responseMeta{start: time.Now(), values: map[string]interface{}{}})
		c.Next()
	}
}

// SetCacheHit records whether the payload came from the analytics cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, MetaCacheHit, hit)
}

// SetMeta stores an arbitrary meta value for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	if meta := lookupMeta(c); meta != nil {
		meta.values[key] = value
	}
}

// ResponseMeta returns a copy of the recorded meta with processing_time_ms measured from the
// start of the request. It returns nil when WithResponseMeta is not installed.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := lookupMeta(c)
	if meta == nil {
		return nil
	}
	out := make(map[string]interface{}, len(meta.values)+1)
	for k, v := range meta.values {
		out[k] = v
	}
	out[MetaProcessingTime] = time.Since(meta.start).Milliseconds()
	return out
}

func lookupMeta(c *gin.Context) *responseMeta {
	if c == nil {
		return nil
	}
	if raw, ok := c.Get(responseMetaKey); ok {
		if meta, ok := raw.(*responseMeta); ok {
			return meta
		}
	}
	return nil
}
