package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/handler/dto"
	"github.com/yourusername/thisorthat-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// Create обрабатывает POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	question, err := h.questionService.Create(userID, service.CreateQuestionInput{
		Text:        req.Text,
		OptionA:     req.OptionA,
		OptionB:     req.OptionB,
		InitialVote: entity.Choice(req.InitialVote),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// GetByID обрабатывает GET /api/questions/:id
func (h *QuestionHandler) GetByID(c *gin.Context) {
	questionID := c.GetUint("questionID")
	question, err := h.questionService.GetByID(questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// GetFeed обрабатывает GET /api/questions/feed
func (h *QuestionHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	cursor := c.Query("cursor")

	questions, nextCursor, err := h.questionService.GetFeed(userID, pageSize, cursor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedResponse{
		Questions:  questions,
		NextCursor: nextCursor,
	})
}
