package api

import (
	"time"

	"yakuchecker/common/http"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, e *Evaluator, health *Health, timeout time.Duration) {
	server.GET("/ping", PingHandler)
	server.GET("/health", health.Handler)

	// API v1 路由组
	v1 := server.Group("/api/v1", http.TimeoutMiddleware(timeout))
	{
		v1.POST("/score", e.ScoreHandler)
		v1.POST("/decompose", e.DecomposeHandler)
		v1.POST("/analyze", e.AnalyzeHandler)
		v1.POST("/analyze/batch", e.BatchHandler)
		v1.POST("/discard", e.DiscardHandler)
	}
}
