package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type coded struct{ code int }

func (c coded) Error() string   { return fmt.Sprintf("upstream said %d", c.code) }
func (c coded) StatusCode() int { return c.code }

func TestResolveError(t *testing.T) {
	en := MessagesFor("en")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "forbidden gets the fixed message",
			err:        genai.APIError{Code: 403, Message: "caller does not have permission"},
			wantStatus: http.StatusForbidden,
			wantMsg:    en.byStatus[http.StatusForbidden],
		},
		{
			name:       "wrapped status is still found",
			err:        fmt.Errorf("listing: %w", genai.APIError{Code: 429, Message: "quota"}),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    en.byStatus[http.StatusTooManyRequests],
		},
		{
			name:       "pointer error with passthrough message",
			err:        &genai.APIError{Code: 409, Message: "already exists", Status: "ALREADY_EXISTS"},
			wantStatus: http.StatusConflict,
			wantMsg:    "already exists",
		},
		{
			name:       "status coder",
			err:        fmt.Errorf("wrapped: %w", coded{code: 422}),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "wrapped: upstream said 422",
		},
		{
			name:       "genai error status",
			err:        genai.APIError{Code: 503, Message: "overloaded"},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    en.byStatus[http.StatusServiceUnavailable],
		},
		{
			name:       "status without fixed message passes the text through",
			err:        genai.APIError{Code: 400, Message: "bad filter syntax"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad filter syntax",
		},
		{
			name:       "out of range status becomes 500",
			err:        genai.APIError{Code: 302, Message: "moved"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "moved",
		},
		{
			name:       "zero status counts as absent",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "boom",
		},
		{
			name:       "not found in message keeps the text",
			err:        errors.New("Store Not Found: abc"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Store Not Found: abc",
		},
		{
			name:       "invalid metadata",
			err:        fmt.Errorf("%w: key x", services.ErrInvalidMetadata),
			wantStatus: http.StatusBadRequest,
			wantMsg:    services.ErrInvalidMetadata.Error() + ": key x",
		},
		{
			name:       "unknown session",
			err:        clientstate.ErrSessionNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    clientstate.ErrSessionNotFound.Error(),
		},
		{
			name:       "anything else",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := resolveError(tt.err, en)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMessagesForFallsBackToEnglish(t *testing.T) {
	assert.Same(t, MessagesFor("en"), MessagesFor("fr"))
	assert.NotEqual(t, MessagesFor("en").MissingAPIKey, MessagesFor("zh").MissingAPIKey)

	msg, ok := MessagesFor("zh").ForStatus(http.StatusUnauthorized)
	assert.True(t, ok)
	assert.NotEmpty(t, msg)

	_, ok = MessagesFor("en").ForStatus(http.StatusBadRequest)
	assert.False(t, ok)
}

func TestFailWritesResolvedEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/stores/x", nil)

	fail(ctx, logger.NewNopLogger(), MessagesFor("zh"), "Failed to get store", genai.APIError{Code: 404, Message: "gone"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, MessagesFor("zh").byStatus[http.StatusNotFound], env.Error)
}
