package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "fileSearchStores/notes", StoreName("notes"))
	assert.Equal(t, "fileSearchStores/notes", StoreName("fileSearchStores/notes"))
	assert.Equal(t, "fileSearchStores/notes/documents/doc-1", DocumentName(StoreName("notes"), "doc-1"))
	assert.Equal(t, "operations/op-1", OperationName("op-1"))
	assert.Equal(t, "fileSearchStores/notes/operations/op-1", OperationName("/fileSearchStores/notes/operations/op-1"))
}

func TestResourceNamesEscapeIDs(t *testing.T) {
	assert.Equal(t, "fileSearchStores/other%3Fkey=1%23", StoreName("other?key=1#"))
	assert.Equal(t, "fileSearchStores/a%2Fb", StoreName("a/b"))
	assert.Equal(t, "fileSearchStores/a/documents/x%3Fy", DocumentName(StoreName("a"), "x?y"))
	assert.Equal(t, "fileSearchStores/a%3F/documents/d", DocumentName(StoreName("a?"), "d"))
	assert.Equal(t, "fileSearchStores/a/operations/op%23frag", OperationName("fileSearchStores/a/operations/op#frag"))
}

func TestDrainPagesFollowsTokens(t *testing.T) {
	pages := map[string][]string{"": {"a", "b"}, "p2": {"c"}}
	next := map[string]string{"": "p2", "p2": ""}

	var tokens []string
	items, err := drainPages(context.Background(), func(ctx context.Context, token string) ([]*string, string, error) {
		tokens = append(tokens, token)
		var out []*string
		for _, v := range pages[token] {
			out = append(out, &v)
		}
		return out, next[token], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "p2"}, tokens)
	require.Len(t, items, 3)
	assert.Equal(t, "c", *items[2])
}

func TestDrainPagesEmptyReturnsEmptySlice(t *testing.T) {
	items, err := drainPages(context.Background(), func(ctx context.Context, token string) ([]*string, string, error) {
		return nil, "", nil
	})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDrainPagesStopsOnRepeatedToken(t *testing.T) {
	calls := 0
	_, err := drainPages(context.Background(), func(ctx context.Context, token string) ([]*string, string, error) {
		calls++
		return nil, "same", nil
	})
	assert.True(t, errors.Is(err, ErrRepeatedPageToken))
	assert.Equal(t, 2, calls)
}

func TestDrainPagesPassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := drainPages(context.Background(), func(ctx context.Context, token string) ([]*string, string, error) {
		return nil, "", boom
	})
	assert.Same(t, boom, err)
}

func TestClientsReuseClientPerKey(t *testing.T) {
	clients := NewClients(http.DefaultClient)
	ctx := context.Background()

	first, err := clients.ForKey(ctx, "key-a")
	require.NoError(t, err)
	again, err := clients.ForKey(ctx, "key-a")
	require.NoError(t, err)
	other, err := clients.ForKey(ctx, "key-b")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
}

func TestListAllDocumentsKeepsStoreIDInPath(t *testing.T) {
	var escapedPath, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		escapedPath = r.URL.EscapedPath()
		key = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	fs := NewFileSearch(NewClients(srv.Client(), WithBaseURL(srv.URL)))
	docs, err := fs.ListAllDocuments(context.Background(), "k", StoreName("other?key=1#"))
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Contains(t, escapedPath, "fileSearchStores/other%3Fkey=1%23/documents")
	assert.Empty(t, key)
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"store missing","status":"NOT_FOUND"}}`))
	}))
	defer srv.Close()

	fs := NewFileSearch(NewClients(srv.Client(), WithBaseURL(srv.URL)))
	_, err := fs.GetStore(context.Background(), "k", StoreName("missing"))
	require.Error(t, err)

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		t.Fatalf("expected genai.APIError, got %T", err)
	}
	assert.Equal(t, 404, apiErr.Code)
	assert.Equal(t, "store missing", apiErr.Message)
}

func TestDocumentMetadata(t *testing.T) {
	doc := &genai.Document{CustomMetadata: []*genai.CustomMetadata{
		StringMetadata("source_file", "/a.md"),
		NumericMetadata("year", 2024),
	}}
	v, ok := DocumentMetadata(doc, "source_file")
	assert.True(t, ok)
	assert.Equal(t, "/a.md", v)

	_, ok = DocumentMetadata(doc, "year")
	assert.False(t, ok)
	_, ok = DocumentMetadata(nil, "x")
	assert.False(t, ok)
}
