package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-interviewer/internal/models"
	"alfredoptarigan/cv-interviewer/internal/services"
)

type stubQuestionService struct{}

func (stubQuestionService) Generate(ctx context.Context, summary string, numQuestions int) []string {
	questions := make([]string, numQuestions)
	for i := range questions {
		questions[i] = fmt.Sprintf("Question number %d?", i+1)
	}
	return questions
}

type stubScorerService struct{}

func (stubScorerService) Score(ctx context.Context, questions, answers []string) (float64, string) {
	return 9.0, "Excellent throughout."
}

type stubLLMClient struct {
	reply string
	err   error
}

func (s stubLLMClient) ChatCompletion(ctx context.Context, messages []services.ChatMessage, temperature float64, maxTokens int) (string, error) {
	return s.reply, s.err
}

type stubInterviewRepo struct{}

func (stubInterviewRepo) Create(interview *models.Interview) error { return nil }
func (stubInterviewRepo) FindByID(id uuid.UUID) (*models.Interview, error) {
	return nil, fmt.Errorf("interview not found")
}
func (stubInterviewRepo) UpdateStatus(id uuid.UUID, status models.InterviewStatus) error { return nil }
func (stubInterviewRepo) UpdateResult(id uuid.UUID, score float64, feedback string, transcript string) error {
	return nil
}

type stubSTTService struct {
	text string
	err  error
}

func (s stubSTTService) Recognize(ctx context.Context, audio []byte, contentType string) (string, error) {
	return s.text, s.err
}

type stubDocRepo struct {
	doc *models.Document

	updatedID      uuid.UUID
	updatedSummary string
}

func (s *stubDocRepo) Create(document *models.Document) error { return nil }
func (s *stubDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	if s.doc != nil && s.doc.ID == id {
		return s.doc, nil
	}
	return nil, fmt.Errorf("document not found")
}
func (s *stubDocRepo) UpdateSummary(id uuid.UUID, summary string) error {
	s.updatedID = id
	s.updatedSummary = summary
	return nil
}

func newInterviewApp(docRepo *stubDocRepo) *fiber.App {
	svc := services.NewInterviewService(
		stubQuestionService{},
		stubScorerService{},
		stubLLMClient{reply: "Certainly."},
		services.NewPromptBuilder(),
		stubInterviewRepo{},
	)

	handler := NewInterviewHandler(svc, docRepo, stubSTTService{text: "spoken answer"}, 4)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error(), "code": code})
		},
	})
	app.Post("/interview/start", handler.HandleStart)
	app.Post("/interview/:id/answer", handler.HandleAnswer)
	app.Get("/interview/:id", handler.HandleGet)
	app.Get("/interview/:id/result", handler.HandleResult)
	app.Get("/interview/:id/transcript", handler.HandleTranscript)
	app.Post("/interview/:id/notes", handler.HandleAddNote)
	app.Post("/interview/:id/chat", handler.HandleChat)
	return app
}

func TestInterviewEndToEnd(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{
		Summary:      "## Technical Skills\n\n- Go",
		NumQuestions: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start models.StartInterviewResponse
	decodeJSON(t, resp, &start)
	assert.Equal(t, "Question number 1?", start.Question)
	assert.Equal(t, models.Progress{Asked: 1, Total: 2}, start.Progress)

	base := "/interview/" + start.InterviewID.String()

	resp = postJSON(t, app, base+"/answer", models.AnswerRequest{Answer: "first answer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answer models.AnswerResponse
	decodeJSON(t, resp, &answer)
	assert.Equal(t, "Question number 2?", answer.Question)
	assert.False(t, answer.Complete)

	resp = postJSON(t, app, base+"/answer", models.AnswerRequest{Answer: "second answer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &answer)
	assert.True(t, answer.Complete)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, base+"/result", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.ResultResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, 9.0, result.Score)
	assert.Equal(t, "Excellent throughout.", result.Feedback)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, base+"/transcript", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "interview_transcript.txt")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	transcript := string(body)
	assert.Contains(t, transcript, "INTERVIEW TRANSCRIPT")
	assert.Contains(t, transcript, "YOU: first answer")
}

func TestAnswerWithAudioRecording(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{
		Summary:      "summary",
		NumQuestions: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start models.StartInterviewResponse
	decodeJSON(t, resp, &start)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "answer.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/interview/"+start.InterviewID.String()+"/answer", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answer models.AnswerResponse
	decodeJSON(t, resp, &answer)
	assert.Equal(t, "Question number 2?", answer.Question)

	state, err := app.Test(httptest.NewRequest(http.MethodGet, "/interview/"+start.InterviewID.String(), nil), -1)
	require.NoError(t, err)

	var get models.InterviewStateResponse
	decodeJSON(t, state, &get)

	var sawSpoken bool
	for _, turn := range get.Turns {
		if turn.Role == "user" && turn.Message == "spoken answer" {
			sawSpoken = true
		}
	}
	assert.True(t, sawSpoken)
}

func TestStartFromDocument(t *testing.T) {
	doc := &models.Document{
		ID:      uuid.New(),
		Summary: "## Technical Skills\n\n- Python",
	}
	app := newInterviewApp(&stubDocRepo{doc: doc})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{
		DocumentID: doc.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start models.StartInterviewResponse
	decodeJSON(t, resp, &start)
	// Falls back to the configured question count
	assert.Equal(t, models.Progress{Asked: 1, Total: 4}, start.Progress)
}

func TestStartFromUnknownDocument(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{
		DocumentID: uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartWithBadDocumentID(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{
		DocumentID: "not-a-uuid",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartWithoutSummary(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInterviewIDValidation(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/not-a-uuid/answer", models.AnswerRequest{Answer: "hello"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/interview/"+uuid.New().String()+"/answer", models.AnswerRequest{Answer: "hello"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResultBeforeCompletion(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{Summary: "summary"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start models.StartInterviewResponse
	decodeJSON(t, resp, &start)

	result, err := app.Test(httptest.NewRequest(http.MethodGet, "/interview/"+start.InterviewID.String()+"/result", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
}

func TestAddNoteAndChat(t *testing.T) {
	app := newInterviewApp(&stubDocRepo{})

	resp := postJSON(t, app, "/interview/start", models.StartInterviewRequest{Summary: "summary"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var start models.StartInterviewResponse
	decodeJSON(t, resp, &start)
	base := "/interview/" + start.InterviewID.String()

	resp = postJSON(t, app, base+"/notes", models.NoteRequest{Text: "extra note"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, base+"/chat", models.ChatRequest{Message: "Could you repeat that?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chat models.ChatResponse
	decodeJSON(t, resp, &chat)
	assert.Equal(t, "Certainly.", chat.Reply)
}
