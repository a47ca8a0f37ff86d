package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const (
	knowledgeChunkSize    = 1000
	knowledgeChunkOverlap = 100
	knowledgeSearchLimit  = 3
)

// KnowledgeService stores interviewing guidance documents (rubrics,
// question banks) in a vector collection and retrieves the most
// relevant passages for prompt enrichment.
type KnowledgeService interface {
	InitCollection() error
	AddDocument(ctx context.Context, docID string, docType string, text string) error
	RetrieveContext(ctx context.Context, query string) string
}

type SearchResult struct {
	ID      string
	Score   float32
	Text    string
	DocType string
}

type knowledgeService struct {
	client         *qdrant.Client
	embedder       EmbeddingService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewKnowledgeService(urlStr, apiKey, collectionName string, embedder EmbeddingService) (KnowledgeService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &knowledgeService{
		client:         client,
		embedder:       embedder,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     embeddingSize,
	}, nil
}

// InitCollection implements KnowledgeService.
func (k *knowledgeService) InitCollection() error {
	ctx := context.Background()

	exists, err := k.client.CollectionExists(ctx, k.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Knowledge collection already exists")
		return nil
	}

	err = k.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: k.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     k.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", k.collectionName)
	return nil
}

// AddDocument implements KnowledgeService. The document is chunked and
// each chunk stored with its own embedding.
func (k *knowledgeService) AddDocument(ctx context.Context, docID string, docType string, text string) error {
	chunks := k.chunker.ChunkText(text, knowledgeChunkSize, knowledgeChunkOverlap)

	for i, chunk := range chunks {
		embedding, err := k.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		pointID := uuid.New()
		point := &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(pointID.ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"doc_id":   docID,
				"doc_type": docType,
				"chunk":    i,
				"text":     chunk,
			}),
		}

		_, err = k.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: k.collectionName,
			Points:         []*qdrant.PointStruct{point},
		})
		if err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", i, err)
		}
	}

	return nil
}

// RetrieveContext implements KnowledgeService. Retrieval is best
// effort: any failure returns an empty context so prompts still work
// without the knowledge base.
func (k *knowledgeService) RetrieveContext(ctx context.Context, query string) string {
	embedding, err := k.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️ Knowledge retrieval skipped: %v", err)
		return ""
	}

	searchResult, err := k.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: k.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(knowledgeSearchLimit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Printf("⚠️ Knowledge retrieval skipped: %v", err)
		return ""
	}

	var results []SearchResult
	for _, point := range searchResult {
		payload := point.Payload

		result := SearchResult{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if dtype, ok := payload["doc_type"]; ok {
			if val, ok := dtype.GetKind().(*qdrant.Value_StringValue); ok {
				result.DocType = val.StringValue
			}
		}

		results = append(results, result)
	}

	return FormatRAGContext(results)
}
