package controller

import (
	"context"
	"io"

	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/models"
	"github/itish2003/filesearch/services"

	"google.golang.org/genai"
)

type fakeDocumentService struct {
	docs       []*genai.Document
	err        error
	lastStore  *genai.FileSearchStore
	lastKey    string
	lastUpload services.UploadInput
	uploadBody string
	lastOpName string
	deletedDoc string
}

func (f *fakeDocumentService) ListDocuments(ctx context.Context, store *genai.FileSearchStore, apiKey string) ([]*genai.Document, error) {
	f.lastStore, f.lastKey = store, apiKey
	return f.docs, f.err
}

func (f *fakeDocumentService) UploadDocument(ctx context.Context, store *genai.FileSearchStore, apiKey string, in services.UploadInput) (*genai.UploadToFileSearchStoreOperation, error) {
	f.lastStore, f.lastKey, f.lastUpload = store, apiKey, in
	body, _ := io.ReadAll(in.Content)
	f.uploadBody = string(body)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.UploadToFileSearchStoreOperation{Name: store.Name + "/operations/op-1"}, nil
}

func (f *fakeDocumentService) DeleteDocument(ctx context.Context, store *genai.FileSearchStore, documentID, apiKey string) error {
	f.lastStore, f.lastKey, f.deletedDoc = store, apiKey, documentID
	return f.err
}

func (f *fakeDocumentService) GetOperation(ctx context.Context, name, apiKey string) (*genai.UploadToFileSearchStoreOperation, error) {
	f.lastOpName, f.lastKey = name, apiKey
	if f.err != nil {
		return nil, f.err
	}
	return &genai.UploadToFileSearchStoreOperation{Name: name, Done: true}, nil
}

type fakeStoreService struct {
	stores    []*genai.FileSearchStore
	err       error
	lastForce bool
	lastID    string
}

func (f *fakeStoreService) ListStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error) {
	return f.stores, f.err
}

func (f *fakeStoreService) CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &genai.FileSearchStore{Name: "fileSearchStores/created", DisplayName: displayName}, nil
}

func (f *fakeStoreService) GetStore(ctx context.Context, apiKey, storeID string) (*genai.FileSearchStore, error) {
	f.lastID = storeID
	if f.err != nil {
		return nil, f.err
	}
	return &genai.FileSearchStore{Name: gemini.StoreName(storeID)}, nil
}

func (f *fakeStoreService) DeleteStore(ctx context.Context, apiKey, storeID string, force bool) error {
	f.lastID, f.lastForce = storeID, force
	return f.err
}

type fakeRAGService struct {
	err     error
	lastReq models.QueryTextRequest
	lastKey string
}

func (f *fakeRAGService) QueryRAG(c context.Context, apiKey string, req models.QueryTextRequest) (*models.QueryRAGResponse, error) {
	f.lastReq, f.lastKey = req, apiKey
	if f.err != nil {
		return nil, f.err
	}
	return &models.QueryRAGResponse{Answer: "42", Model: "gemini-2.5-flash"}, nil
}
