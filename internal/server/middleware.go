package server

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/api"
)

// ctxRequestID gin.Context 中保存请求 ID 的 key。
const ctxRequestID = "request_id"

// RequestID 透传或生成请求 ID，并写入响应头。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(api.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(api.HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger 记录每个请求的方法、路径、状态码与耗时。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(ctxRequestID),
		)
	}
}

// Recovery 捕获处理过程中的 panic，返回 500 而不中断服务。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic recovered", "panic", r, "path", c.Request.URL.Path, "request_id", c.GetString(ctxRequestID))
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
			}
		}()
		c.Next()
	}
}

// CORS 按 origins 放行跨域请求；包含 "*" 时放行全部来源。OPTIONS 预检直接返回 204。
func CORS(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || slices.Contains(origins, origin)) {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "))
			if headers := c.GetHeader("Access-Control-Request-Headers"); headers != "" {
				c.Header("Access-Control-Allow-Headers", headers)
			} else {
				c.Header("Access-Control-Allow-Headers", "*")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
