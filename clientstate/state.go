// Package clientstate holds per-session UI state: the API key, query
// history and model settings, composed into one State.
package clientstate

import "slices"

// State is the three slices merged into one value.
type State struct {
	APIKeySlice
	QuerySlice
	ModelSlice
}

func NewState() *State {
	return &State{ModelSlice: NewModelSlice()}
}

// clone copies s deeply enough that updating the copy through the slice
// setters leaves s untouched. Setters replace pointers, they never write
// through them.
func (s *State) clone() *State {
	c := *s
	c.History = slices.Clone(s.History)
	return &c
}

// Persisted is the subset of State that survives a restart. History and the
// current result live only in memory.
type Persisted struct {
	APIKey        *string        `json:"apiKey,omitempty"`
	SelectedModel string         `json:"selectedModel"`
	Params        AdvancedParams `json:"params"`
}

func (s *State) Partialize() Persisted {
	return Persisted{
		APIKey:        s.APIKey,
		SelectedModel: s.SelectedModel,
		Params:        s.Params,
	}
}

// Rehydrate merges a persisted snapshot into a fresh State.
func Rehydrate(p Persisted) *State {
	s := NewState()
	s.APIKey = p.APIKey
	if p.SelectedModel != "" {
		s.SelectedModel = p.SelectedModel
	}
	s.Params = p.Params
	return s
}

// Snapshot is what the API shows for a session. The key itself never leaves
// the server.
type Snapshot struct {
	HasAPIKey       bool           `json:"hasApiKey"`
	SelectedModel   string         `json:"selectedModel"`
	SupportedModels []string       `json:"supportedModels"`
	Params          AdvancedParams `json:"params"`
	QuerySlice
}

func (s *State) Snapshot() Snapshot {
	history := make([]HistoryEntry, len(s.History))
	copy(history, s.History)
	return Snapshot{
		HasAPIKey:       s.HasAPIKey(),
		SelectedModel:   s.SelectedModel,
		SupportedModels: SupportedModels,
		Params:          s.Params,
		QuerySlice: QuerySlice{
			History:       history,
			CurrentResult: s.CurrentResult,
		},
	}
}
