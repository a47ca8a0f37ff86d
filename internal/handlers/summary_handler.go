package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-interviewer/internal/models"
	"alfredoptarigan/cv-interviewer/internal/repositories"
	"alfredoptarigan/cv-interviewer/internal/services"
)

type SummaryHandler struct {
	summarizer services.SummarizerService
	extractor  services.ExtractorService
	docRepo    repositories.DocumentRepository
}

func NewSummaryHandler(
	summarizer services.SummarizerService,
	extractor services.ExtractorService,
	docRepo repositories.DocumentRepository,
) *SummaryHandler {
	return &SummaryHandler{
		summarizer: summarizer,
		extractor:  extractor,
		docRepo:    docRepo,
	}
}

// HandleSummarize turns resume text into a Markdown summary. The text
// comes either inline or from a previously uploaded document.
func (h *SummaryHandler) HandleSummarize(c *fiber.Ctx) error {
	var req models.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	text := req.Text
	var refreshID *uuid.UUID
	if req.DocumentID != "" {
		docID, err := uuid.Parse(req.DocumentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document ID format",
			})
		}

		doc, err := h.docRepo.FindByID(docID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}

		text, err = h.extractor.ExtractText(doc.FilePath)
		if err != nil {
			// A stale or unreadable file still produces a summary,
			// carrying the error inline so the caller sees what happened.
			text = fmt.Sprintf("Error reading document: %v", err)
		} else {
			refreshID = &docID
		}
	}

	if strings.TrimSpace(text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text must not be empty",
		})
	}

	summary, sections := h.summarizer.Analyze(text)

	// Re-summarizing a stored document refreshes its saved summary, so
	// classification rule changes propagate.
	if refreshID != nil {
		if err := h.docRepo.UpdateSummary(*refreshID, summary); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to update document summary: %v", err),
			})
		}
	}

	sectionMap := make(map[string][]string, len(sections))
	for name, lines := range sections {
		sectionMap[string(name)] = lines
	}

	return c.JSON(models.SummarizeResponse{
		Summary:  summary,
		Sections: sectionMap,
	})
}
