package controller

import (
	"net/http"
	"strconv"

	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
)

type StoreController struct {
	storeService services.StoreService
	messages     *Messages
	log          logger.ILogger
}

func NewStoreController(service services.StoreService, messages *Messages, log logger.ILogger) *StoreController {
	return &StoreController{storeService: service, messages: messages, log: log}
}

// ListStores is the handler for GET /api/stores.
func (c *StoreController) ListStores(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	stores, err := c.storeService.ListStores(ctx.Request.Context(), apiKey)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to list stores", err)
		return
	}
	respondOK(ctx, http.StatusOK, models.NewListData(stores))
}

// CreateStore is the handler for POST /api/stores.
func (c *StoreController) CreateStore(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	var req models.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": "+err.Error())
		return
	}

	store, err := c.storeService.CreateStore(ctx.Request.Context(), apiKey, req.DisplayName)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to create store", err)
		return
	}
	respondOK(ctx, http.StatusCreated, store)
}

// GetStore is the handler for GET /api/stores/:storeId.
func (c *StoreController) GetStore(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	store, err := c.storeService.GetStore(ctx.Request.Context(), apiKey, ctx.Param("storeId"))
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to get store", err)
		return
	}
	respondOK(ctx, http.StatusOK, store)
}

// DeleteStore is the handler for DELETE /api/stores/:storeId. force defaults
// to true so stores that still hold documents can be removed.
func (c *StoreController) DeleteStore(ctx *gin.Context) {
	apiKey, ok := apiKeyFrom(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, c.messages.MissingAPIKey)
		return
	}

	force, err := strconv.ParseBool(ctx.DefaultQuery("force", "true"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": force must be true or false")
		return
	}

	if err := c.storeService.DeleteStore(ctx.Request.Context(), apiKey, ctx.Param("storeId"), force); err != nil {
		fail(ctx, c.log, c.messages, "Failed to delete store", err)
		return
	}
	respondOK(ctx, http.StatusOK, gin.H{"deleted": true})
}
