package clientstate

import "strings"

// APIKeySlice holds the user's Gemini API key.
type APIKeySlice struct {
	APIKey *string `json:"apiKey,omitempty"`
}

// SetAPIKey stores the trimmed key. A blank key clears the slice.
func (s *APIKeySlice) SetAPIKey(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		s.APIKey = nil
		return
	}
	s.APIKey = &key
}

func (s *APIKeySlice) ClearAPIKey() {
	s.APIKey = nil
}

func (s *APIKeySlice) HasAPIKey() bool {
	return s.APIKey != nil && *s.APIKey != ""
}

// Key returns the stored key or "".
func (s *APIKeySlice) Key() string {
	if s.APIKey == nil {
		return ""
	}
	return *s.APIKey
}
