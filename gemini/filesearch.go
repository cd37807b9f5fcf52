package gemini

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"
)

const defaultPageSize = 20

// UploadRequest describes one file going into a store.
type UploadRequest struct {
	Reader         io.Reader
	MimeType       string
	DisplayName    string
	CustomMetadata []*genai.CustomMetadata
	ChunkingConfig *genai.ChunkingConfig
}

// FileSearch runs store, document and upload calls with the caller's key.
type FileSearch struct {
	clients *Clients
}

func NewFileSearch(clients *Clients) *FileSearch {
	return &FileSearch{clients: clients}
}

func (f *FileSearch) ListAllStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error) {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return drainPages(ctx, func(ctx context.Context, token string) ([]*genai.FileSearchStore, string, error) {
		page, err := client.FileSearchStores.List(ctx, &genai.ListFileSearchStoresConfig{
			PageSize:  defaultPageSize,
			PageToken: token,
		})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextPageToken, nil
	})
}

func (f *FileSearch) CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error) {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{DisplayName: displayName})
}

func (f *FileSearch) GetStore(ctx context.Context, apiKey, name string) (*genai.FileSearchStore, error) {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.FileSearchStores.Get(ctx, name, nil)
}

// DeleteStore removes a store. force also deletes the documents it holds;
// without it the API refuses to delete a non-empty store.
func (f *FileSearch) DeleteStore(ctx context.Context, apiKey, name string, force bool) error {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return err
	}
	return client.FileSearchStores.Delete(ctx, name, &genai.DeleteFileSearchStoreConfig{Force: genai.Ptr(force)})
}

func (f *FileSearch) ListAllDocuments(ctx context.Context, apiKey, storeName string) ([]*genai.Document, error) {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return drainPages(ctx, func(ctx context.Context, token string) ([]*genai.Document, string, error) {
		page, err := client.FileSearchStores.Documents.List(ctx, storeName, &genai.ListDocumentsConfig{
			PageSize:  defaultPageSize,
			PageToken: token,
		})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextPageToken, nil
	})
}

func (f *FileSearch) DeleteDocument(ctx context.Context, apiKey, name string, force bool) error {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return err
	}
	return client.FileSearchStores.Documents.Delete(ctx, name, &genai.DeleteDocumentConfig{Force: genai.Ptr(force)})
}

// UploadToStore streams a file into a store. The returned operation tracks
// indexing; poll it with GetOperation.
func (f *FileSearch) UploadToStore(ctx context.Context, apiKey, storeName string, req UploadRequest) (*genai.UploadToFileSearchStoreOperation, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("upload request has no content")
	}
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.FileSearchStores.UploadToFileSearchStore(ctx, req.Reader, storeName, &genai.UploadToFileSearchStoreConfig{
		MIMEType:       req.MimeType,
		DisplayName:    req.DisplayName,
		CustomMetadata: req.CustomMetadata,
		ChunkingConfig: req.ChunkingConfig,
	})
}

// GetOperation fetches the current state of an upload operation.
func (f *FileSearch) GetOperation(ctx context.Context, apiKey, name string) (*genai.UploadToFileSearchStoreOperation, error) {
	client, err := f.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.Operations.GetUploadToFileSearchStoreOperation(ctx,
		&genai.UploadToFileSearchStoreOperation{Name: OperationName(name)}, nil)
}
