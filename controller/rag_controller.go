package controller

import (
	"net/http"

	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
)

// RAGController handles grounded questions against File Search stores.
type RAGController struct {
	ragService services.RAGService
	messages   *Messages
	log        logger.ILogger
}

func NewRAGController(service services.RAGService, messages *Messages, log logger.ILogger) *RAGController {
	return &RAGController{
		ragService: service,
		messages:   messages,
		log:        log,
	}
}

// QueryRAG is the Gin handler for the POST /api/query endpoint.
func (c *RAGController) QueryRAG(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	var req models.QueryTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": "+err.Error())
		return
	}

	response, err := c.ragService.QueryRAG(ctx.Request.Context(), apiKey, req)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to generate AI response", err)
		return
	}

	respondOK(ctx, http.StatusOK, response)
}
