package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github/itish2003/filesearch/clientstate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutRendersShell(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, Register(router, LayoutConfig{Title: "Docs", Description: "Search <docs>", Locale: "zh"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="zh">`)
	assert.Contains(t, body, `<title>Docs</title>`)
	assert.Contains(t, body, `Search &lt;docs&gt;`)
	assert.Contains(t, body, `class="app-header"`)
	assert.Contains(t, body, `id="loading-overlay"`)
	assert.Contains(t, body, `id="toaster"`)

	m := regexp.MustCompile(`(?s)<script id="app-config" type="application/json">(.*?)</script>`).FindStringSubmatch(body)
	require.Len(t, m, 2)

	var cfg bootstrap
	require.NoError(t, json.Unmarshal([]byte(m[1]), &cfg))
	assert.Equal(t, "zh", cfg.Locale)
	assert.Equal(t, clientstate.DefaultModel, cfg.DefaultModel)
	assert.Equal(t, clientstate.SupportedModels, cfg.SupportedModels)
	assert.Equal(t, clientstate.MaxHistory, cfg.MaxHistory)
}

func TestLayoutDefaults(t *testing.T) {
	data, err := newLayoutData(LayoutConfig{})
	require.NoError(t, err)
	assert.Equal(t, "en", data.Lang)
	assert.Equal(t, "Gemini File Search", data.Title)
}
