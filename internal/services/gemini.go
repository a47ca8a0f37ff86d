package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	embeddingModel = "text-embedding-004"
	maxEmbedInput  = 40000
	embeddingSize  = 768
)

// EmbeddingService produces vector embeddings for knowledge base search.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type embeddingService struct {
	client     *genai.Client
	embedModel string
}

func NewEmbeddingService(apiKey string) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &embeddingService{
		client:     client,
		embedModel: embeddingModel,
	}, nil
}

// GenerateEmbedding implements EmbeddingService.
func (g *embeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > maxEmbedInput {
		text = text[:maxEmbedInput]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
