package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-interviewer/internal/models"
	"alfredoptarigan/cv-interviewer/internal/services"
)

type SpeechHandler struct {
	ttsService services.TTSService
	sttService services.STTService
}

func NewSpeechHandler(ttsService services.TTSService, sttService services.STTService) *SpeechHandler {
	return &SpeechHandler{
		ttsService: ttsService,
		sttService: sttService,
	}
}

// HandleTTS synthesizes speech for the given text and streams back MP3
// audio.
func (h *SpeechHandler) HandleTTS(c *fiber.Ctx) error {
	var req models.TTSRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	audio, err := h.ttsService.Synthesize(c.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrTextTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}

// HandleSTT transcribes an uploaded audio recording.
func (h *SpeechHandler) HandleSTT(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file uploaded. Please upload 'audio'.",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open audio file",
		})
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read audio file",
		})
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/l16; rate=16000"
	}

	text, err := h.sttService.Recognize(c.Context(), audio, contentType)
	if err != nil {
		if errors.Is(err, services.ErrNoSpeech) || errors.Is(err, services.ErrNotUnderstood) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.STTResponse{Text: text})
}
