package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travel-assistant-core/internal/orchestrator"
	"travel-assistant-core/pkg/response"
)

type processMessageReq struct {
	UserID         string            `json:"user_id" binding:"required"`
	Text           string            `json:"text" binding:"required"`
	ContextUpdates map[string]string `json:"context_updates,omitempty"`
}

// processMessage runs one user message through the pipeline.
// @Summary Process Message
// @Description Analyze a message, synthesize a workflow and return the merged outcome
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body processMessageReq true "User message"
// @Success 200 {object} response.Resp "Execution outcome"
// @Failure 400 {object} response.Resp "Invalid request"
// @Failure 503 {object} response.Resp "Shutting down"
// @Router /api/v1/messages [post]
func (srv *HTTPServer) processMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req processMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		srv.l.Warnf(ctx, "httpserver.processMessage: bad request: %v", err)
		response.Error(c, err, nil)
		return
	}

	outcome, err := srv.core.ProcessRequest(ctx, req.UserID, req.Text, req.ContextUpdates)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrEmptyUserID), errors.Is(err, orchestrator.ErrEmptyText):
			response.Error(c, err, nil)
		case errors.Is(err, orchestrator.ErrShuttingDown):
			c.JSON(http.StatusServiceUnavailable, response.Resp{
				ErrorCode: http.StatusServiceUnavailable,
				Message:   "Service shutting down",
			})
		default:
			srv.l.Errorf(ctx, "httpserver.processMessage: %v", err)
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, outcome)
}
