package models

// APIResponse is the envelope every API route answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListData wraps a collection together with its size.
type ListData[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func NewListData[T any](items []T) ListData[T] {
	if items == nil {
		items = []T{}
	}
	return ListData[T]{Data: items, Count: len(items)}
}

type TokenUsage struct {
	PromptTokens    int32 `json:"promptTokens"`
	CandidateTokens int32 `json:"candidateTokens"`
	TotalTokens     int32 `json:"totalTokens"`
}

type QueryRAGResponse struct {
	Answer     string           `json:"answer"`
	Model      string           `json:"model"`
	StoreNames []string         `json:"storeNames"`
	SourceDocs []SourceDocument `json:"sources,omitempty"`
	Usage      *TokenUsage      `json:"usage,omitempty"`
	SessionID  string           `json:"sessionId,omitempty"`
}

type SessionCreatedResponse struct {
	SessionID string `json:"sessionId"`
}
