package server

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// requestID はリクエストIDを引き継ぐか、なければ新しく割り当てる
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// accessLog はアクセスログを標準ロガーの出力先へ書き出す
func accessLog() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: log.Writer(),
		Formatter: func(p gin.LogFormatterParams) string {
			id, _ := p.Keys[requestIDHeader].(string)
			return fmt.Sprintf("%s %s %s %d %s id=%s\n",
				p.TimeStamp.Format("2006/01/02 15:04:05"),
				p.Method, p.Path, p.StatusCode, p.Latency, id)
		},
	})
}
