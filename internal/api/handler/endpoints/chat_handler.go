package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reconagent"
	"reconagent/internal/api/handler/middleware"
	"reconagent/internal/api/handler/request"
	"reconagent/internal/api/handler/response"
	"reconagent/internal/api/models"
	"reconagent/pkg"
)

// ChatAsker is the orchestrator surface the handler needs.
type ChatAsker interface {
	Ask(ctx context.Context, req models.ChatRequest) models.Envelope
}

type chatHandler struct {
	logger zerolog.Logger
	config reconagent.AppConfig
	chat   ChatAsker
}

func ChatHandler(router *graceful.Graceful, cfg reconagent.AppConfig, logger zerolog.Logger, chat ChatAsker) {
	h := &chatHandler{
		logger: logger,
		config: cfg,
		chat:   chat,
	}

	router.GET("/healthz", h.health)

	routes := router.Group("/recon_agent")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", h.ask)
	}
}

func (slf *chatHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (slf *chatHandler) ask(c *gin.Context) {
	var req request.ChatRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse chat request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Please provide a valid question in the request body"})
		return
	}

	logger := slf.logger.With().Str("request_id", uuid.NewString()).Logger()
	logger.Info().Str("question", req.ChatInput).Msg("Processing chat request")

	history := make(models.ChatHistory, 0, len(req.ChatHistory))
	for _, turn := range req.ChatHistory {
		history = append(history, models.ChatTurn{Question: turn.Question, Answer: turn.Answer})
	}

	env := slf.chat.Ask(c.Request.Context(), models.ChatRequest{
		Question:      req.ChatInput,
		History:       history,
		RequesterName: req.UserName,
	})

	c.JSON(http.StatusOK, response.ChatResponse{
		ChatOutput: env.Answer,
		CsvURL:     env.ExportURL,
	})
}
