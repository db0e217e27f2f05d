package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/session"
)

type transitionRequest struct {
	State  *session.State `json:"state"`
	Action session.Action `json:"action" binding:"required"`
}

// SessionTransition applies a navigation action to the client's session state.
// A missing state starts from the initial one for today.
func (h *Handler) SessionTransition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, "action", err)
		return
	}
	state := session.Initial(h.now())
	if req.State != nil {
		state = *req.State
	}
	c.JSON(http.StatusOK, session.Reduce(state, req.Action))
}
