package clientstate

import (
	"time"

	"github/itish2003/filesearch/models"
)

// MaxHistory bounds QuerySlice.History.
const MaxHistory = 50

// HistoryEntry records one past query and its result.
type HistoryEntry struct {
	ID         string                   `json:"id"`
	Query      string                   `json:"query"`
	StoreNames []string                 `json:"storeNames"`
	Model      string                   `json:"model"`
	Result     *models.QueryRAGResponse `json:"result,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
}

// QuerySlice keeps history newest first plus the result on screen.
type QuerySlice struct {
	History       []HistoryEntry           `json:"history"`
	CurrentResult *models.QueryRAGResponse `json:"currentResult,omitempty"`
}

// AddToHistory prepends entry and drops the oldest entries past MaxHistory.
func (s *QuerySlice) AddToHistory(entry HistoryEntry) {
	history := make([]HistoryEntry, 0, min(len(s.History)+1, MaxHistory))
	history = append(history, entry)
	for _, e := range s.History {
		if len(history) == MaxHistory {
			break
		}
		history = append(history, e)
	}
	s.History = history
}

func (s *QuerySlice) SetCurrentResult(result *models.QueryRAGResponse) {
	s.CurrentResult = result
}

func (s *QuerySlice) ClearCurrentResult() {
	s.CurrentResult = nil
}

func (s *QuerySlice) ClearHistory() {
	s.History = nil
}
