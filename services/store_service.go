package services

import (
	"context"

	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"

	"google.golang.org/genai"
)

type StoreService interface {
	ListStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error)
	CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error)
	GetStore(ctx context.Context, apiKey, storeID string) (*genai.FileSearchStore, error)
	DeleteStore(ctx context.Context, apiKey, storeID string, force bool) error
}

type storeServiceImpl struct {
	api FileSearchAPI
	log logger.ILogger
}

func NewStoreService(api FileSearchAPI, log logger.ILogger) StoreService {
	return &storeServiceImpl{api: api, log: log}
}

func (s *storeServiceImpl) ListStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error) {
	return s.api.ListAllStores(ctx, apiKey)
}

func (s *storeServiceImpl) CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error) {
	store, err := s.api.CreateStore(ctx, apiKey, displayName)
	if err != nil {
		return nil, err
	}
	s.log.Info("SERVICE", "Created store", map[string]interface{}{"store": store.Name, "display_name": displayName})
	return store, nil
}

func (s *storeServiceImpl) GetStore(ctx context.Context, apiKey, storeID string) (*genai.FileSearchStore, error) {
	return s.api.GetStore(ctx, apiKey, gemini.StoreName(storeID))
}

func (s *storeServiceImpl) DeleteStore(ctx context.Context, apiKey, storeID string, force bool) error {
	name := gemini.StoreName(storeID)
	if err := s.api.DeleteStore(ctx, apiKey, name, force); err != nil {
		return err
	}
	s.log.Info("SERVICE", "Deleted store", map[string]interface{}{"store": name, "force": force})
	return nil
}
