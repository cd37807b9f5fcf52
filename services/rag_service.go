package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// RAGService answers questions grounded in File Search stores.
type RAGService interface {
	QueryRAG(c context.Context, apiKey string, req models.QueryTextRequest) (*models.QueryRAGResponse, error)
}

type ragServiceImpl struct {
	generators GeneratorFactory
	sessions   *clientstate.Manager
	log        logger.ILogger
}

// NewRAGService creates a new RAG service. sessions may be nil, in which case
// session ids on requests are ignored.
func NewRAGService(generators GeneratorFactory, sessions *clientstate.Manager, log logger.ILogger) RAGService {
	return &ragServiceImpl{
		generators: generators,
		sessions:   sessions,
		log:        log,
	}
}

func (r *ragServiceImpl) QueryRAG(c context.Context, apiKey string, req models.QueryTextRequest) (*models.QueryRAGResponse, error) {
	r.log.Info("SERVICE", "Querying stores", map[string]interface{}{
		"stores":     req.StoreIDs,
		"session_id": req.SessionID,
	})

	// Session settings fill whatever the request leaves out.
	var sessionModel string
	var params clientstate.AdvancedParams
	if r.sessions != nil && req.SessionID != "" {
		snap, err := r.sessions.Snapshot(c, req.SessionID)
		if err != nil {
			return nil, err
		}
		sessionModel = snap.SelectedModel
		params = snap.Params
	}

	model := req.Model
	if model == "" {
		model = sessionModel
	}
	if model == "" {
		model = clientstate.DefaultModel
	}

	generator, err := r.generators.ForKey(c, apiKey)
	if err != nil {
		return nil, err
	}

	config := buildGenerateConfig(req, params)
	result, err := generator.GenerateContent(c, model, genai.Text(req.Query), config)
	if err != nil {
		return nil, fmt.Errorf("gemini api call failed: %w", err)
	}

	response, err := buildQueryResponse(result)
	if err != nil {
		return nil, err
	}
	response.Model = model
	response.StoreNames = storeNames(req.StoreIDs)
	response.SessionID = req.SessionID

	if r.sessions != nil && req.SessionID != "" {
		r.recordHistory(c, req, response)
	}

	r.log.Info("SERVICE", "Query answered", map[string]interface{}{
		"model":   model,
		"sources": len(response.SourceDocs),
	})
	return response, nil
}

// recordHistory stores the result on the session. Failing to do so does not
// fail the query; the answer is already paid for.
func (r *ragServiceImpl) recordHistory(c context.Context, req models.QueryTextRequest, response *models.QueryRAGResponse) {
	entry := clientstate.HistoryEntry{
		ID:         uuid.New().String(),
		Query:      req.Query,
		StoreNames: response.StoreNames,
		Model:      response.Model,
		Result:     response,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.sessions.Update(c, req.SessionID, func(s *clientstate.State) {
		s.SetCurrentResult(response)
		s.AddToHistory(entry)
	})
	if err != nil {
		r.log.Warn("SERVICE", "Could not record query history", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
	}
}

func buildGenerateConfig(req models.QueryTextRequest, params clientstate.AdvancedParams) *genai.GenerateContentConfig {
	instruction := req.SystemInstruction
	if instruction == "" && params.SystemInstruction != nil {
		instruction = *params.SystemInstruction
	}
	filter := req.MetadataFilter
	if filter == "" && params.MetadataFilter != nil {
		filter = *params.MetadataFilter
	}

	config := &genai.GenerateContentConfig{
		Tools:             GetFileSearchTools(req.StoreIDs, filter),
		SystemInstruction: GetSystemPrompt(instruction),
		Temperature:       firstNonNil(req.Temperature, params.Temperature),
		TopP:              firstNonNil(req.TopP, params.TopP),
	}
	if maxTokens := firstNonNil(req.MaxOutputTokens, params.MaxOutputTokens); maxTokens != nil {
		config.MaxOutputTokens = *maxTokens
	}
	if topK := firstNonNil(req.TopK, params.TopK); topK != nil {
		config.TopK = genai.Ptr(float32(*topK))
	}
	return config
}

func buildQueryResponse(result *genai.GenerateContentResponse) (*models.QueryRAGResponse, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, ErrNoAnswer
	}
	candidate := result.Candidates[0]

	var answer strings.Builder
	if candidate.Content != nil {
		for _, p := range candidate.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			answer.WriteString(p.Text)
		}
	}

	response := &models.QueryRAGResponse{Answer: answer.String()}

	if gm := candidate.GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.RetrievedContext == nil {
				continue
			}
			rc := chunk.RetrievedContext
			response.SourceDocs = append(response.SourceDocs, models.SourceDocument{
				Title: rc.Title,
				URI:   rc.URI,
				Text:  rc.Text,
			})
		}
	}

	if u := result.UsageMetadata; u != nil {
		response.Usage = &models.TokenUsage{
			PromptTokens:    u.PromptTokenCount,
			CandidateTokens: u.CandidatesTokenCount,
			TotalTokens:     u.TotalTokenCount,
		}
	}
	return response, nil
}

func storeNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, gemini.StoreName(id))
	}
	return names
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
