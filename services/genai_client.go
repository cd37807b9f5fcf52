package services

import (
	"context"

	"github/itish2003/filesearch/gemini"

	"google.golang.org/genai"
)

// ContentGenerator is satisfied by (*genai.Models).
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeneratorFactory hands out a generator bound to one API key.
type GeneratorFactory interface {
	ForKey(ctx context.Context, apiKey string) (ContentGenerator, error)
}

type genaiGenerators struct {
	clients *gemini.Clients
}

// NewGeneratorFactory serves generators from the shared per-key clients.
func NewGeneratorFactory(clients *gemini.Clients) GeneratorFactory {
	return genaiGenerators{clients: clients}
}

func (g genaiGenerators) ForKey(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := g.clients.ForKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}
