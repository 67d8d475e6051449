package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yipee/internal/route"
)

// setupRoutes はルート表のエントリを登録する
func (s *Server) setupRoutes() {
	for _, e := range s.table.Entries() {
		switch e.Action {
		case route.ActionPing:
			s.engine.Handle(e.Method, e.Path, s.handleTest)
		default:
			handler := serveEntry(e)
			s.engine.Handle(e.Method, e.Path, handler)
			if e.Method == http.MethodGet {
				s.engine.HEAD(e.Path, handler)
			}
		}
	}

	// 未登録の (メソッド, パス) はすべて 404 ページ
	s.engine.NoRoute(serveEntry(s.table.NotFound()))
}

// serveEntry は固定レスポンスを返すハンドラを作る
func serveEntry(e route.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(e.Status, e.ContentType, e.Body)
	}
}

// handleTest は診断行を出力して空のレスポンスを返す
func (s *Server) handleTest(c *gin.Context) {
	fmt.Fprintln(s.stdout, "TEST")
	if s.metrics != nil {
		s.metrics.TestPings.Inc()
	}
	c.Status(http.StatusOK)
}
