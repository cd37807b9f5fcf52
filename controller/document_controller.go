package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

// DocumentController serves the documents of one store. Every call forwards
// the caller's x-api-key to the Gemini API.
type DocumentController struct {
	documentService services.DocumentService
	messages        *Messages
	log             logger.ILogger
	maxUploadBytes  int64
}

func NewDocumentController(service services.DocumentService, messages *Messages, log logger.ILogger, maxUploadBytes int64) *DocumentController {
	return &DocumentController{
		documentService: service,
		messages:        messages,
		log:             log,
		maxUploadBytes:  maxUploadBytes,
	}
}

// storeFromPath builds the store descriptor from the route parameter. The
// store is not looked up; a bad id surfaces as the upstream 404.
func storeFromPath(ctx *gin.Context) *genai.FileSearchStore {
	return &genai.FileSearchStore{Name: gemini.StoreName(ctx.Param("storeId"))}
}

// ListDocuments is the handler for GET /api/stores/:storeId/documents.
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	store := storeFromPath(ctx)
	docs, err := c.documentService.ListDocuments(ctx.Request.Context(), store, apiKey)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to list documents", err)
		return
	}

	respondOK(ctx, http.StatusOK, models.NewListData(docs))
}

// UploadDocument is the handler for POST /api/stores/:storeId/documents.
// The body is multipart with a "file" part and optional "displayName",
// "metadata" (JSON object), "maxTokensPerChunk" and "maxOverlapTokens".
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	if c.maxUploadBytes > 0 {
		if ctx.Request.ContentLength > c.maxUploadBytes {
			respondError(ctx, http.StatusRequestEntityTooLarge, c.messages.FileTooLarge)
			return
		}
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(ctx, http.StatusRequestEntityTooLarge, c.messages.FileTooLarge)
			return
		}
		respondError(ctx, http.StatusBadRequest, c.messages.FileRequired)
		return
	}

	var metadata map[string]interface{}
	if raw := ctx.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": metadata must be a JSON object")
			return
		}
	}

	maxTokens, err := optionalInt(ctx.PostForm("maxTokensPerChunk"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": maxTokensPerChunk must be a positive integer")
		return
	}
	maxOverlap, err := optionalInt(ctx.PostForm("maxOverlapTokens"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": maxOverlapTokens must be a positive integer")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.FileRequired)
		return
	}
	defer file.Close()

	displayName := ctx.PostForm("displayName")
	if displayName == "" {
		displayName = fileHeader.Filename
	}

	// Browsers send octet-stream for anything they do not recognise; let the
	// service sniff those.
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}

	op, err := c.documentService.UploadDocument(ctx.Request.Context(), storeFromPath(ctx), apiKey, services.UploadInput{
		Content:           file,
		Size:              fileHeader.Size,
		DisplayName:       displayName,
		MimeType:          mimeType,
		Metadata:          metadata,
		MaxTokensPerChunk: maxTokens,
		MaxOverlapTokens:  maxOverlap,
	})
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to upload document", err)
		return
	}

	respondOK(ctx, http.StatusAccepted, op)
}

// DeleteDocument is the handler for DELETE /api/stores/:storeId/documents/:documentId.
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	if err := c.documentService.DeleteDocument(ctx.Request.Context(), storeFromPath(ctx), ctx.Param("documentId"), apiKey); err != nil {
		fail(ctx, c.log, c.messages, "Failed to delete document", err)
		return
	}

	respondOK(ctx, http.StatusOK, gin.H{"deleted": true})
}

// GetOperation is the handler for GET /api/operations/*name. Uploads return
// an operation; the UI polls this until it is done.
func (c *DocumentController) GetOperation(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	// The catch-all parameter keeps its leading slash.
	name := strings.TrimPrefix(ctx.Param("name"), "/")
	op, err := c.documentService.GetOperation(ctx.Request.Context(), name, apiKey)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to get operation", err)
		return
	}

	respondOK(ctx, http.StatusOK, op)
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid integer")
	}
	return v, nil
}
