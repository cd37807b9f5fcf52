package controller

import (
	"regexp"
	"sync"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Dependencies is everything the API routes need.
type Dependencies struct {
	DocumentService services.DocumentService
	StoreService    services.StoreService
	RAGService      services.RAGService
	Sessions        *clientstate.Manager
	Messages        *Messages
	Logger          logger.ILogger
	AllowedOrigins  string
	MaxUploadBytes  int64
}

var (
	storeIDPattern = regexp.MustCompile(`^(fileSearchStores/)?[a-z0-9][a-z0-9-]*$`)
	registerOnce   sync.Once
)

// registerValidators adds the custom binding rules to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("storeid", func(fl validator.FieldLevel) bool {
				return storeIDPattern.MatchString(fl.Field().String())
			})
		}
	})
}

// NewRouter wires the API routes onto a fresh engine.
func NewRouter(deps Dependencies) *gin.Engine {
	registerValidators()

	if deps.Messages == nil {
		deps.Messages = MessagesFor("en")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if deps.AllowedOrigins == "" {
		deps.AllowedOrigins = "*"
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger), CORS(deps.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "File Search API",
			"version": "1.0.0",
		})
	})

	documents := NewDocumentController(deps.DocumentService, deps.Messages, deps.Logger, deps.MaxUploadBytes)
	stores := NewStoreController(deps.StoreService, deps.Messages, deps.Logger)
	rag := NewRAGController(deps.RAGService, deps.Messages, deps.Logger)

	api := router.Group("/api")
	{
		api.GET("/stores", stores.ListStores)
		api.POST("/stores", stores.CreateStore)
		api.GET("/stores/:storeId", stores.GetStore)
		api.DELETE("/stores/:storeId", stores.DeleteStore)

		api.GET("/stores/:storeId/documents", documents.ListDocuments)
		api.POST("/stores/:storeId/documents", documents.UploadDocument)
		api.DELETE("/stores/:storeId/documents/:documentId", documents.DeleteDocument)
		api.GET("/operations/*name", documents.GetOperation)

		api.POST("/query", rag.QueryRAG)
	}

	if deps.Sessions != nil {
		sessions := NewSessionController(deps.Sessions, deps.Messages, deps.Logger)
		s := api.Group("/sessions")
		{
			s.POST("", sessions.CreateSession)
			s.GET("/:id", sessions.GetSession)
			s.DELETE("/:id", sessions.DeleteSession)
			s.PUT("/:id/api-key", sessions.SetAPIKey)
			s.DELETE("/:id/api-key", sessions.ClearAPIKey)
			s.PUT("/:id/model", sessions.SetModel)
			s.PUT("/:id/params", sessions.SetParams)
			s.DELETE("/:id/params", sessions.ResetParams)
			s.DELETE("/:id/history", sessions.ClearHistory)
			s.DELETE("/:id/result", sessions.ClearResult)
		}
	}

	return router
}
