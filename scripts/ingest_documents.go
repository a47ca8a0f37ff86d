package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"alfredoptarigan/cv-interviewer/internal/config"
	"alfredoptarigan/cv-interviewer/internal/services"
)

// Reference document to ingest into the knowledge base
type ReferenceDoc struct {
	Path    string
	DocType string
	Name    string
}

func main() {
	log.Println("🚀 Starting knowledge base ingestion...")

	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded")

	// Initialize services
	extractor := services.NewExtractorService()

	embedder, err := services.NewEmbeddingService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}
	log.Println("✅ Embedding service initialized")

	knowledgeService, err := services.NewKnowledgeService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize knowledge service: %v", err)
	}

	if err := knowledgeService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}
	log.Println("✅ Qdrant collection ready")

	// Documents to ingest
	documents := []ReferenceDoc{
		{
			Path:    "./reference_docs/interview_question_guidelines.pdf",
			DocType: "question_guidelines",
			Name:    "Interview Question Guidelines",
		},
		{
			Path:    "./reference_docs/scoring_rubric.pdf",
			DocType: "scoring_rubric",
			Name:    "Interview Scoring Rubric",
		},
		{
			Path:    "./reference_docs/behavioral_interview_handbook.pdf",
			DocType: "question_guidelines",
			Name:    "Behavioral Interview Handbook",
		},
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for i, doc := range documents {
		log.Printf("📄 [%d/%d] Processing: %s", i+1, len(documents), doc.Name)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("⚠️ File not found, skipping: %s", doc.Path)
			failCount++
			continue
		}

		text, err := extractor.ExtractText(doc.Path)
		if err != nil {
			log.Printf("❌ Failed to extract text from %s: %v", doc.Path, err)
			failCount++
			continue
		}

		docID := strings.TrimSuffix(strings.ToLower(strings.ReplaceAll(doc.Name, " ", "_")), ".pdf")
		if err := knowledgeService.AddDocument(ctx, docID, doc.DocType, text); err != nil {
			log.Printf("❌ Failed to ingest %s: %v", doc.Name, err)
			failCount++
			continue
		}

		log.Printf("✅ Ingested: %s", doc.Name)
		successCount++
	}

	// Summary
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Ingestion complete: %d succeeded, %d failed\n", successCount, failCount)
	fmt.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
