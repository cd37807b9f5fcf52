package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

const (
	metaSourceFile = "source_file"
	metaFileHash   = "file_hash"

	uploadConcurrency = 4
)

// FileIndexingService mirrors a local directory into one File Search store.
type FileIndexingService struct {
	api       FileSearchAPI
	apiKey    string
	storeName string
	log       logger.ILogger
}

func NewFileIndexingService(api FileSearchAPI, apiKey, storeID string, log logger.ILogger) *FileIndexingService {
	return &FileIndexingService{
		api:       api,
		apiKey:    apiKey,
		storeName: gemini.StoreName(storeID),
		log:       log,
	}
}

// IndexState is what the store currently holds for one local path.
type IndexState struct {
	Hash      string
	Documents []string
}

// WatchDirectory re-indexes files as they change until ctx is cancelled.
func (s *FileIndexingService) WatchDirectory(ctx context.Context, dirPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Error("WATCHER", "Failed to create file watcher", map[string]interface{}{"error": err})
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSupportedFile(event.Name) {
					continue
				}
				s.handleEvent(ctx, event)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Error("WATCHER", "Watcher error", map[string]interface{}{"error": err})
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := watcher.Add(dirPath); err != nil {
		s.log.Error("WATCHER", "Failed to add path to watcher", map[string]interface{}{"path": dirPath, "error": err})
		return
	}
	s.log.Info("WATCHER", "Watching directory", map[string]interface{}{"path": dirPath, "store": s.storeName})

	<-ctx.Done()
	s.log.Info("WATCHER", "Context cancelled, shutting down watcher", nil)
}

func (s *FileIndexingService) handleEvent(ctx context.Context, event fsnotify.Event) {
	switch {
	// Editors often save via create+rename, so Create and Write are handled alike.
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		hash, err := calculateFileHash(event.Name)
		if err != nil {
			s.log.Warn("WATCHER", "Could not hash file", map[string]interface{}{"path": event.Name, "error": err.Error()})
			return
		}
		state, err := s.getCurrentIndexState(ctx)
		if err != nil {
			s.log.Error("WATCHER", "Could not get current index state", map[string]interface{}{"error": err})
			return
		}
		if current, ok := state[event.Name]; ok {
			if current.Hash == hash {
				return
			}
			s.deleteDocuments(ctx, current.Documents)
		}
		if err := s.uploadFile(ctx, event.Name, hash); err != nil {
			s.log.Error("WATCHER", "Failed to upload file", map[string]interface{}{"path": event.Name, "error": err})
		}

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		state, err := s.getCurrentIndexState(ctx)
		if err != nil {
			s.log.Error("WATCHER", "Could not get current index state", map[string]interface{}{"error": err})
			return
		}
		if current, ok := state[event.Name]; ok {
			s.deleteDocuments(ctx, current.Documents)
		}
	}
}

// ScanAndIndexDirectory brings the store in line with the directory: new and
// changed files are uploaded, files that disappeared are removed.
func (s *FileIndexingService) ScanAndIndexDirectory(ctx context.Context, dirPath string) error {
	s.log.Info("INDEXER", "Starting directory scan", map[string]interface{}{"path": dirPath, "store": s.storeName})

	indexed, err := s.getCurrentIndexState(ctx)
	if err != nil {
		return fmt.Errorf("could not get current index state: %w", err)
	}

	localFiles := make(map[string]bool)
	pending := make(map[string]string) // path -> hash
	err = filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isSupportedFile(path) {
			return nil
		}
		localFiles[path] = true

		hash, err := calculateFileHash(path)
		if err != nil {
			s.log.Warn("INDEXER", "Could not hash file", map[string]interface{}{"path": path, "error": err.Error()})
			return nil
		}
		if state, ok := indexed[path]; ok {
			if state.Hash == hash {
				return nil
			}
			s.deleteDocuments(ctx, state.Documents)
		}
		pending[path] = hash
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking %s: %w", dirPath, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for path, hash := range pending {
		g.Go(func() error {
			if err := s.uploadFile(gctx, path, hash); err != nil {
				s.log.Error("INDEXER", "Failed to upload file", map[string]interface{}{"path": path, "error": err})
			}
			return nil
		})
	}
	_ = g.Wait()

	for path, state := range indexed {
		if !localFiles[path] {
			s.log.Info("INDEXER", "File deleted, removing from store", map[string]interface{}{"path": path})
			s.deleteDocuments(ctx, state.Documents)
		}
	}

	s.log.Info("INDEXER", "Directory scan finished", map[string]interface{}{
		"uploaded": len(pending),
		"local":    len(localFiles),
	})
	return nil
}

func (s *FileIndexingService) uploadFile(ctx context.Context, path, hash string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("could not detect mime type of %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	op, err := s.api.UploadToStore(ctx, s.apiKey, s.storeName, gemini.UploadRequest{
		Reader:      f,
		MimeType:    baseMimeType(mt),
		DisplayName: filepath.Base(path),
		CustomMetadata: []*genai.CustomMetadata{
			gemini.StringMetadata(metaSourceFile, path),
			gemini.StringMetadata(metaFileHash, hash),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	s.log.Info("INDEXER", "Uploaded file", map[string]interface{}{
		"path":      path,
		"size":      info.Size(),
		"operation": op.Name,
	})
	return nil
}

// getCurrentIndexState groups the store's documents by the local path they
// were uploaded from. Documents uploaded by other means are ignored.
func (s *FileIndexingService) getCurrentIndexState(ctx context.Context) (map[string]IndexState, error) {
	docs, err := s.api.ListAllDocuments(ctx, s.apiKey, s.storeName)
	if err != nil {
		return nil, err
	}
	state := make(map[string]IndexState)
	for _, doc := range docs {
		path, ok := gemini.DocumentMetadata(doc, metaSourceFile)
		if !ok {
			continue
		}
		hash, _ := gemini.DocumentMetadata(doc, metaFileHash)
		entry := state[path]
		if entry.Hash == "" {
			entry.Hash = hash
		}
		entry.Documents = append(entry.Documents, doc.Name)
		state[path] = entry
	}
	return state, nil
}

func (s *FileIndexingService) deleteDocuments(ctx context.Context, names []string) {
	for _, name := range names {
		if err := s.api.DeleteDocument(ctx, s.apiKey, name, true); err != nil {
			s.log.Error("INDEXER", "Failed to delete document", map[string]interface{}{"document": name, "error": err})
		}
	}
}

func isSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".pdf", ".html", ".htm", ".csv", ".json", ".docx", ".xlsx", ".pptx":
		return true
	default:
		return false
	}
}

func calculateFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
