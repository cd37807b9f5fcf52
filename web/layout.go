// Package web serves the HTML shell the browser UI mounts into.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github/itish2003/filesearch/clientstate"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LayoutConfig is what the page header and the client bootstrap need.
type LayoutConfig struct {
	Title       string
	Description string
	Locale      string
}

// bootstrap is handed to the client as JSON so it starts with the same
// defaults the API uses.
type bootstrap struct {
	Locale          string   `json:"locale"`
	SupportedModels []string `json:"supportedModels"`
	DefaultModel    string   `json:"defaultModel"`
	MaxHistory      int      `json:"maxHistory"`
	APIKeyHeader    string   `json:"apiKeyHeader"`
}

type layoutData struct {
	Lang        string
	Title       string
	Description string
	ConfigJSON  template.JS
}

// ParseTemplates loads the layout and its partials.
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Register mounts GET / on router.
func Register(router *gin.Engine, cfg LayoutConfig) error {
	tmpl, err := ParseTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	data, err := newLayoutData(cfg)
	if err != nil {
		return err
	}
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "layout", data)
	})
	return nil
}

func newLayoutData(cfg LayoutConfig) (layoutData, error) {
	if cfg.Title == "" {
		cfg.Title = "Gemini File Search"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	raw, err := json.Marshal(bootstrap{
		Locale:          cfg.Locale,
		SupportedModels: clientstate.SupportedModels,
		DefaultModel:    clientstate.DefaultModel,
		MaxHistory:      clientstate.MaxHistory,
		APIKeyHeader:    "x-api-key",
	})
	if err != nil {
		return layoutData{}, err
	}
	return layoutData{
		Lang:        cfg.Locale,
		Title:       cfg.Title,
		Description: cfg.Description,
		ConfigJSON:  template.JS(raw),
	}, nil
}
