package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全 HTTP 头中间件
// 服务只返回 JSON、文件下载与 SSE，不承载页面，CSP 一律拒绝
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cross-Origin-Resource-Policy", "same-site")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		// 课表、作业等个人数据不进入共享缓存；SSE 由 Handler 覆盖
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
