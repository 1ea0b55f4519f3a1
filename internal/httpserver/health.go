package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"travel-assistant-core/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "From Travel Assistant Core With Love"
	HealthVersion = "1.0.0"
	ServiceName   = "travel-assistant-core"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck handles readiness check — returns ready if server is up.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "ready",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// healthMetrics exposes the core's health snapshot.
// @Summary Core Metrics
// @Description Active requests, user count and learner score
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Current metrics"
// @Router /api/v1/health/metrics [get]
func (srv *HTTPServer) healthMetrics(c *gin.Context) {
	m := srv.core.HealthMetrics(c.Request.Context())
	response.OK(c, gin.H{
		"active_requests":        m.ActiveRequests,
		"total_users":            m.TotalUsers,
		"average_execution_time": m.AverageExecutionTime.String(),
		"optimization_score":     m.OptimizationScore,
		"generated_at":           response.DateTime(time.Now()),
	})
}
