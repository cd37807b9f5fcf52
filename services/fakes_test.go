package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github/itish2003/filesearch/gemini"

	"google.golang.org/genai"
)

type uploadCall struct {
	StoreName string
	Request   gemini.UploadRequest
	Body      string
}

// fakeFileSearchAPI records calls and serves canned documents. Deleted
// documents disappear from later listings and uploads show up in them.
type fakeFileSearchAPI struct {
	mu        sync.Mutex
	documents []*genai.Document
	listErr   error
	uploads   []uploadCall
	deleted   []string
}

func (f *fakeFileSearchAPI) ListAllStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error) {
	return []*genai.FileSearchStore{{Name: "fileSearchStores/a"}}, nil
}

func (f *fakeFileSearchAPI) CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error) {
	return &genai.FileSearchStore{Name: "fileSearchStores/new", DisplayName: displayName}, nil
}

func (f *fakeFileSearchAPI) GetStore(ctx context.Context, apiKey, name string) (*genai.FileSearchStore, error) {
	return &genai.FileSearchStore{Name: name}, nil
}

func (f *fakeFileSearchAPI) DeleteStore(ctx context.Context, apiKey, name string, force bool) error {
	return nil
}

func (f *fakeFileSearchAPI) ListAllDocuments(ctx context.Context, apiKey, storeName string) ([]*genai.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*genai.Document(nil), f.documents...), nil
}

func (f *fakeFileSearchAPI) DeleteDocument(ctx context.Context, apiKey, name string, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	kept := f.documents[:0:0]
	for _, d := range f.documents {
		if d.Name != name {
			kept = append(kept, d)
		}
	}
	f.documents = kept
	return nil
}

func (f *fakeFileSearchAPI) UploadToStore(ctx context.Context, apiKey, storeName string, req gemini.UploadRequest) (*genai.UploadToFileSearchStoreOperation, error) {
	body, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadCall{StoreName: storeName, Request: req, Body: string(body)})
	f.documents = append(f.documents, &genai.Document{
		Name:           fmt.Sprintf("%s/documents/up-%d", storeName, len(f.uploads)),
		CustomMetadata: req.CustomMetadata,
	})
	return &genai.UploadToFileSearchStoreOperation{Name: storeName + "/operations/op"}, nil
}

func (f *fakeFileSearchAPI) GetOperation(ctx context.Context, apiKey, name string) (*genai.UploadToFileSearchStoreOperation, error) {
	return &genai.UploadToFileSearchStoreOperation{Name: name, Done: true}, nil
}

func (f *fakeFileSearchAPI) uploadedSources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sources []string
	for _, u := range f.uploads {
		for _, m := range u.Request.CustomMetadata {
			if m.Key == metaSourceFile {
				sources = append(sources, m.StringValue)
			}
		}
	}
	return sources
}

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	response *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.response, f.err
}

type fakeFactory struct {
	gen     *fakeGenerator
	lastKey string
}

func (f *fakeFactory) ForKey(ctx context.Context, apiKey string) (ContentGenerator, error) {
	f.lastKey = apiKey
	return f.gen, nil
}
