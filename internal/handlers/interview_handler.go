package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-interviewer/internal/models"
	"alfredoptarigan/cv-interviewer/internal/repositories"
	"alfredoptarigan/cv-interviewer/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	docRepo          repositories.DocumentRepository
	sttService       services.STTService
	numQuestions     int
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	docRepo repositories.DocumentRepository,
	sttService services.STTService,
	numQuestions int,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		docRepo:          docRepo,
		sttService:       sttService,
		numQuestions:     numQuestions,
	}
}

// HandleStart opens a new interview session from either an uploaded
// document or an inline summary.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	summary := req.Summary
	var documentID *uuid.UUID

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

		documentID = &docID
		summary = doc.Summary
	}

	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = h.numQuestions
	}

	response, err := h.interviewService.Start(c.Context(), summary, documentID, numQuestions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleAnswer records a candidate answer and advances the interview.
// The answer arrives either as JSON text or as a multipart audio
// recording that is transcribed first. A failed transcription leaves
// the session untouched.
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	var answer string
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/") {
		answer, err = h.recognizeUpload(c)
		if err != nil {
			return err
		}
	} else {
		var req models.AnswerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		answer = req.Answer
	}

	response, err := h.interviewService.Answer(c.Context(), id, answer)
	if err != nil {
		return h.mapInterviewError(c, err)
	}

	return c.JSON(response)
}

// HandleGet returns the current session state and conversation.
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	response, err := h.interviewService.Get(id)
	if err != nil {
		return h.mapInterviewError(c, err)
	}

	return c.JSON(response)
}

// HandleResult returns the score and feedback for a finished interview.
func (h *InterviewHandler) HandleResult(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	response, err := h.interviewService.Result(c.Context(), id)
	if err != nil {
		return h.mapInterviewError(c, err)
	}

	return c.JSON(response)
}

// HandleTranscript returns the downloadable plain text transcript.
func (h *InterviewHandler) HandleTranscript(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	transcript, err := h.interviewService.Transcript(c.Context(), id)
	if err != nil {
		return h.mapInterviewError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="interview_transcript.txt"`)
	return c.SendString(transcript)
}

// HandleAddNote attaches an additional voice recording transcript to
// the session, either as text or as audio to transcribe.
func (h *InterviewHandler) HandleAddNote(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	var text string
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/") {
		text, err = h.recognizeUpload(c)
		if err != nil {
			return err
		}
	} else {
		var req models.NoteRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		text = req.Text
	}

	if err := h.interviewService.AddNote(id, text); err != nil {
		return h.mapInterviewError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Note recorded successfully",
	})
}

// HandleChat runs the free-form follow-up chat with the interviewer.
func (h *InterviewHandler) HandleChat(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return err
	}

	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	reply, err := h.interviewService.Chat(c.Context(), id, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrInterviewNotFound) {
			return h.mapInterviewError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ChatResponse{Reply: reply})
}

func (h *InterviewHandler) recognizeUpload(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No audio file uploaded. Please upload 'audio'.")
	}

	src, err := file.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "failed to open audio file")
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "failed to read audio file")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/l16; rate=16000"
	}

	text, err := h.sttService.Recognize(c.Context(), audio, contentType)
	if err != nil {
		if errors.Is(err, services.ErrNoSpeech) || errors.Is(err, services.ErrNotUnderstood) {
			return "", fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return "", fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return text, nil
}

func (h *InterviewHandler) parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid interview ID format")
	}
	return id, nil
}

func (h *InterviewHandler) mapInterviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInterviewNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	case errors.Is(err, services.ErrInterviewComplete),
		errors.Is(err, services.ErrInterviewNotComplete),
		errors.Is(err, services.ErrEmptyAnswer),
		errors.Is(err, services.ErrEmptySummary):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
