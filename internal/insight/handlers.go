package insight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-interviewer/internal/services"
)

type Handler struct {
	quizService       QuizService
	emotionService    EmotionService
	transcribeService TranscribeService
	extractor         services.ExtractorService
	mediaPath         string
}

func NewHandler(
	quizService QuizService,
	emotionService EmotionService,
	transcribeService TranscribeService,
	extractor services.ExtractorService,
	mediaPath string,
) *Handler {
	return &Handler{
		quizService:       quizService,
		emotionService:    emotionService,
		transcribeService: transcribeService,
		extractor:         extractor,
		mediaPath:         mediaPath,
	}
}

func (h *Handler) EnsureMediaDir() error {
	if err := os.MkdirAll(h.mediaPath, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	return nil
}

// HandleAnalyzeVideo stores the uploaded interview video and returns
// the emotion report for it.
func (h *Handler) HandleAnalyzeVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No video file uploaded. Please upload 'file'.",
		})
	}

	videoPath := h.mediaTarget(file.Filename)
	if err := c.SaveFile(file, videoPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save video: %v", err),
		})
	}

	report, err := h.emotionService.Analyze(c.Context(), videoPath)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleTranscribeAudio stores the uploaded recording and returns its
// English transcription.
func (h *Handler) HandleTranscribeAudio(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file uploaded. Please upload 'file'.",
		})
	}

	audioPath := h.mediaTarget(file.Filename)
	if err := c.SaveFile(file, audioPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save audio: %v", err),
		})
	}

	text, err := h.transcribeService.Transcribe(c.Context(), audioPath)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"transcription": text})
}

// HandleGenerateQuiz builds a skill quiz from raw text or an uploaded
// resume file.
func (h *Handler) HandleGenerateQuiz(c *fiber.Ctx) error {
	text := strings.TrimSpace(c.FormValue("text"))

	if text == "" {
		file, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No CV provided (send 'file' or 'text')",
			})
		}

		filePath := h.mediaTarget(file.Filename)
		if err := c.SaveFile(file, filePath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save file: %v", err),
			})
		}

		if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") || strings.EqualFold(filepath.Ext(file.Filename), ".docx") {
			text, err = h.extractor.ExtractText(filePath)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("failed to extract text: %v", err),
				})
			}
		} else {
			raw, err := os.ReadFile(filePath)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to read file",
				})
			}
			text = string(raw)
		}
	}

	quiz, err := h.quizService.Generate(text)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(quiz)
}

type submitQuizRequest struct {
	QuizID  string            `json:"quiz_id"`
	Answers []SubmittedAnswer `json:"answers"`
}

// HandleSubmitQuiz grades a quiz submission.
func (h *Handler) HandleSubmitQuiz(c *fiber.Ctx) error {
	var req submitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected JSON body",
		})
	}

	result, err := h.quizService.Submit(req.QuizID, req.Answers)
	if err != nil {
		if errors.Is(err, ErrInvalidQuizID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// mediaTarget builds a unique path under the media directory so
// concurrent uploads with the same name never collide.
func (h *Handler) mediaTarget(filename string) string {
	ext := filepath.Ext(filename)
	return filepath.Join(h.mediaPath, fmt.Sprintf("%s%s", uuid.New().String(), ext))
}
