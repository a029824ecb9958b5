package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/handler/dto"
	"github.com/yourusername/thisorthat-api/internal/service"
)

// VoteHandler обрабатывает голосование по вопросам
type VoteHandler struct {
	voteService *service.VoteService
}

// NewVoteHandler создает новый обработчик голосования
func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// Vote обрабатывает POST /api/questions/:id/vote
func (h *VoteHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	questionID := c.GetUint("questionID")

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	result, err := h.voteService.ResolveVote(userID, questionID, entity.Choice(req.Choice))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
