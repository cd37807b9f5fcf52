package models

type CreateStoreRequest struct {
	DisplayName string `json:"displayName" binding:"max=512"`
}

// QueryTextRequest asks a question against one or more stores. Nil pointers
// leave the matching generation parameter to the model default.
type QueryTextRequest struct {
	StoreIDs          []string `json:"storeIds" binding:"required,min=1,dive,storeid"`
	Query             string   `json:"query" binding:"required"`
	Model             string   `json:"model,omitempty"`
	SystemInstruction string   `json:"systemInstruction,omitempty"`
	Temperature       *float32 `json:"temperature,omitempty" binding:"omitempty,gte=0,lte=2"`
	MaxOutputTokens   *int32   `json:"maxOutputTokens,omitempty" binding:"omitempty,gte=1"`
	TopP              *float32 `json:"topP,omitempty" binding:"omitempty,gte=0,lte=1"`
	TopK              *int32   `json:"topK,omitempty" binding:"omitempty,gte=1"`
	MetadataFilter    string   `json:"metadataFilter,omitempty"`
	SessionID         string   `json:"sessionId,omitempty"`
}

type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type SetModelRequest struct {
	Model string `json:"model" binding:"required"`
}

// AdvancedParamsRequest replaces the whole set of advanced generation
// parameters for a session.
type AdvancedParamsRequest struct {
	SystemInstruction *string  `json:"systemInstruction,omitempty"`
	Temperature       *float32 `json:"temperature,omitempty" binding:"omitempty,gte=0,lte=2"`
	MaxOutputTokens   *int32   `json:"maxOutputTokens,omitempty" binding:"omitempty,gte=1"`
	TopP              *float32 `json:"topP,omitempty" binding:"omitempty,gte=0,lte=1"`
	TopK              *int32   `json:"topK,omitempty" binding:"omitempty,gte=1"`
	MetadataFilter    *string  `json:"metadataFilter,omitempty"`
}
