package bridge

import (
	"log"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すヘッダーです
	HeaderRequestID = "X-Request-ID"

	contextKeyRequestID = "request_id"
)

// RequestID は呼び出し元が指定しなかった場合にリクエストIDを採番します
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(contextKeyRequestID, rid)
		c.Header(HeaderRequestID, rid)

		c.Next()
	}
}

// RequestIDFromContext はリクエストIDを取り出します
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// Logging はリクエストごとに1行のログを出力します
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		log.Printf("request_id=%s method=%s path=%s status=%d latency=%s",
			RequestIDFromContext(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)
	}
}

// Tracing はリクエストごとにX-Rayセグメントを作成します
func Tracing(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, seg := xray.BeginSegment(c.Request.Context(), serviceName)
		defer seg.Close(nil)

		if err := seg.AddAnnotation("request_id", RequestIDFromContext(c)); err != nil {
			log.Printf("Failed to add request_id annotation: %v", err)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
