package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"
)

// FileSearchAPI is the part of gemini.FileSearch the services use.
type FileSearchAPI interface {
	ListAllStores(ctx context.Context, apiKey string) ([]*genai.FileSearchStore, error)
	CreateStore(ctx context.Context, apiKey, displayName string) (*genai.FileSearchStore, error)
	GetStore(ctx context.Context, apiKey, name string) (*genai.FileSearchStore, error)
	DeleteStore(ctx context.Context, apiKey, name string, force bool) error
	ListAllDocuments(ctx context.Context, apiKey, storeName string) ([]*genai.Document, error)
	DeleteDocument(ctx context.Context, apiKey, name string, force bool) error
	UploadToStore(ctx context.Context, apiKey, storeName string, req gemini.UploadRequest) (*genai.UploadToFileSearchStoreOperation, error)
	GetOperation(ctx context.Context, apiKey, name string) (*genai.UploadToFileSearchStoreOperation, error)
}

// UploadInput is a file on its way into a store.
type UploadInput struct {
	Content           io.Reader
	Size              int64
	DisplayName       string
	MimeType          string
	Metadata          map[string]interface{}
	MaxTokensPerChunk int
	MaxOverlapTokens  int
}

// DocumentService manages the documents inside a store.
type DocumentService interface {
	ListDocuments(ctx context.Context, store *genai.FileSearchStore, apiKey string) ([]*genai.Document, error)
	UploadDocument(ctx context.Context, store *genai.FileSearchStore, apiKey string, in UploadInput) (*genai.UploadToFileSearchStoreOperation, error)
	DeleteDocument(ctx context.Context, store *genai.FileSearchStore, documentID, apiKey string) error
	GetOperation(ctx context.Context, name, apiKey string) (*genai.UploadToFileSearchStoreOperation, error)
}

type documentServiceImpl struct {
	api FileSearchAPI
	log logger.ILogger
}

func NewDocumentService(api FileSearchAPI, log logger.ILogger) DocumentService {
	return &documentServiceImpl{api: api, log: log}
}

func (s *documentServiceImpl) ListDocuments(ctx context.Context, store *genai.FileSearchStore, apiKey string) ([]*genai.Document, error) {
	docs, err := s.api.ListAllDocuments(ctx, apiKey, store.Name)
	if err != nil {
		return nil, err
	}
	s.log.Info("SERVICE", "Listed documents", map[string]interface{}{"store": store.Name, "count": len(docs)})
	return docs, nil
}

func (s *documentServiceImpl) UploadDocument(ctx context.Context, store *genai.FileSearchStore, apiKey string, in UploadInput) (*genai.UploadToFileSearchStoreOperation, error) {
	content := in.Content
	mimeType := in.MimeType
	if mimeType == "" {
		detected, reader, err := sniffMimeType(in.Content)
		if err != nil {
			return nil, fmt.Errorf("could not read upload: %w", err)
		}
		mimeType, content = detected, reader
	}

	metadata, err := buildCustomMetadata(in.Metadata)
	if err != nil {
		return nil, err
	}

	req := gemini.UploadRequest{
		Reader:         content,
		MimeType:       mimeType,
		DisplayName:    in.DisplayName,
		CustomMetadata: metadata,
		ChunkingConfig: buildChunkingConfig(in.MaxTokensPerChunk, in.MaxOverlapTokens),
	}

	op, err := s.api.UploadToStore(ctx, apiKey, store.Name, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("SERVICE", "Started document upload", map[string]interface{}{
		"store":     store.Name,
		"name":      in.DisplayName,
		"mime_type": mimeType,
		"size":      in.Size,
		"operation": op.Name,
	})
	return op, nil
}

func (s *documentServiceImpl) DeleteDocument(ctx context.Context, store *genai.FileSearchStore, documentID, apiKey string) error {
	name := gemini.DocumentName(store.Name, documentID)
	if err := s.api.DeleteDocument(ctx, apiKey, name, true); err != nil {
		return err
	}
	s.log.Info("SERVICE", "Deleted document", map[string]interface{}{"document": name})
	return nil
}

func (s *documentServiceImpl) GetOperation(ctx context.Context, name, apiKey string) (*genai.UploadToFileSearchStoreOperation, error) {
	return s.api.GetOperation(ctx, apiKey, name)
}

// sniffMimeType detects the content type from the leading bytes and returns
// a reader that still yields the whole stream.
func sniffMimeType(r io.Reader) (string, io.Reader, error) {
	// mimetype reads at most 3072 bytes by default.
	header := make([]byte, 3072)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	header = header[:n]
	return baseMimeType(mimetype.Detect(header)), io.MultiReader(bytes.NewReader(header), r), nil
}

// baseMimeType drops parameters such as "; charset=utf-8".
func baseMimeType(mt *mimetype.MIME) string {
	v, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(v)
}

// buildCustomMetadata converts a decoded JSON object into the API's typed
// key/value list. Strings, numbers and string lists are allowed.
func buildCustomMetadata(in map[string]interface{}) ([]*genai.CustomMetadata, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]*genai.CustomMetadata, 0, len(in))
	for _, key := range slices.Sorted(maps.Keys(in)) {
		switch v := in[key].(type) {
		case string:
			out = append(out, gemini.StringMetadata(key, v))
		case float64:
			out = append(out, gemini.NumericMetadata(key, v))
		case int:
			out = append(out, gemini.NumericMetadata(key, float64(v)))
		case []string:
			out = append(out, gemini.StringListMetadata(key, v))
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: list %q must only contain strings", ErrInvalidMetadata, key)
				}
				values = append(values, str)
			}
			out = append(out, gemini.StringListMetadata(key, values))
		default:
			return nil, fmt.Errorf("%w: unsupported value for %q", ErrInvalidMetadata, key)
		}
	}
	return out, nil
}

// buildChunkingConfig returns nil when neither limit is set, leaving chunking
// to the service defaults.
func buildChunkingConfig(maxTokens, maxOverlap int) *genai.ChunkingConfig {
	if maxTokens <= 0 && maxOverlap <= 0 {
		return nil
	}
	ws := &genai.WhiteSpaceConfig{}
	if maxTokens > 0 {
		ws.MaxTokensPerChunk = genai.Ptr(int32(maxTokens))
	}
	if maxOverlap > 0 {
		ws.MaxOverlapTokens = genai.Ptr(int32(maxOverlap))
	}
	return &genai.ChunkingConfig{WhiteSpaceConfig: ws}
}
