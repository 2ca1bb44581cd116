package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 6<<20 = 6MB，需容纳 ICS 上传）
//
// 声明了 Content-Length 的超限请求直接返回 413；
// 未声明长度的请求由 MaxBytesReader 截断，Handler 绑定时识别 *http.MaxBytesError
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
