package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/services"
)

type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// GET /projects/:id/chats
//
// REST mirror of the room-history socket event, used by clients that
// reconcile after a reconnect.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	messages, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project_id": id, "messages": messages})
}
