package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/cv-interviewer/internal/models"
	"alfredoptarigan/cv-interviewer/internal/repositories"
)

const (
	roleAI   = "ai"
	roleUser = "user"

	welcomeMessage = "Hello! Welcome to the interview. I'm excited to learn more about your background and experience. Let's begin with the first question."
	closingMessage = "Thank you for your time! That concludes our interview."

	chatTemperature = 0.7
	chatMaxTokens   = 500
)

var transitionMessages = []string{
	"Great answer! Let me ask you the next question.",
	"Excellent response! Moving on to the next question.",
	"Thank you for sharing that. Here's my next question.",
	"Nice response! Let's continue.",
}

var (
	ErrInterviewNotFound    = errors.New("interview not found")
	ErrInterviewComplete    = errors.New("interview already complete")
	ErrInterviewNotComplete = errors.New("interview not complete yet")
	ErrEmptyAnswer          = errors.New("answer must not be empty")
	ErrEmptySummary         = errors.New("summary must not be empty")
)

// Session is a live interview held in memory until it completes.
type Session struct {
	ID            uuid.UUID
	DocumentID    *uuid.UUID
	Summary       string
	Questions     []string
	NumQuestions  int
	QuestionIndex int
	Waiting       bool
	Complete      bool
	Conversation  []models.Turn
	ChatHistory   []ChatMessage
	VoiceNotes    []string
	Score         float64
	Feedback      string
	Scored        bool

	scoreOnce sync.Once
	mu        sync.Mutex
}

type InterviewService interface {
	Start(ctx context.Context, summary string, documentID *uuid.UUID, numQuestions int) (*models.StartInterviewResponse, error)
	Answer(ctx context.Context, id uuid.UUID, answer string) (*models.AnswerResponse, error)
	Get(id uuid.UUID) (*models.InterviewStateResponse, error)
	Result(ctx context.Context, id uuid.UUID) (*models.ResultResponse, error)
	Transcript(ctx context.Context, id uuid.UUID) (string, error)
	AddNote(id uuid.UUID, text string) error
	Chat(ctx context.Context, id uuid.UUID, message string) (string, error)
	ScoreSession(ctx context.Context, interviewID uuid.UUID) error
	SetWorker(worker Worker)
}

type interviewService struct {
	questions     QuestionService
	scorer        ScorerService
	llm           LLMClient
	prompts       *PromptBuilder
	interviewRepo repositories.InterviewRepository
	worker        Worker

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewInterviewService(
	questions QuestionService,
	scorer ScorerService,
	llm LLMClient,
	prompts *PromptBuilder,
	interviewRepo repositories.InterviewRepository,
) InterviewService {
	return &interviewService{
		questions:     questions,
		scorer:        scorer,
		llm:           llm,
		prompts:       prompts,
		interviewRepo: interviewRepo,
		sessions:      make(map[uuid.UUID]*Session),
	}
}

// SetWorker wires the background scoring worker. Scoring still happens
// inline on the result endpoint when no worker is attached.
func (s *interviewService) SetWorker(worker Worker) {
	s.worker = worker
}

// Start implements InterviewService.
func (s *interviewService) Start(ctx context.Context, summary string, documentID *uuid.UUID, numQuestions int) (*models.StartInterviewResponse, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, ErrEmptySummary
	}

	questions := s.questions.Generate(ctx, summary, numQuestions)

	session := &Session{
		ID:           uuid.New(),
		DocumentID:   documentID,
		Summary:      summary,
		Questions:    questions,
		NumQuestions: numQuestions,
		Waiting:      true,
		Conversation: []models.Turn{
			{Role: roleAI, Message: welcomeMessage},
			{Role: roleAI, Message: questions[0]},
		},
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if err := s.interviewRepo.Create(&models.Interview{
		ID:           session.ID,
		DocumentID:   documentID,
		Status:       models.StatusActive,
		NumQuestions: numQuestions,
	}); err != nil {
		log.Printf("⚠️ Failed to persist interview %s: %v", session.ID, err)
	}

	return &models.StartInterviewResponse{
		InterviewID: session.ID,
		Message:     welcomeMessage,
		Question:    questions[0],
		Progress:    models.Progress{Asked: 1, Total: numQuestions},
	}, nil
}

// Answer implements InterviewService. It records the candidate's answer
// and either asks the next question or closes the interview.
func (s *interviewService) Answer(ctx context.Context, id uuid.UUID, answer string) (*models.AnswerResponse, error) {
	session, err := s.findSession(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Complete {
		return nil, ErrInterviewComplete
	}

	session.Conversation = append(session.Conversation, models.Turn{Role: roleUser, Message: answer})
	session.QuestionIndex++

	if session.QuestionIndex < session.NumQuestions && session.QuestionIndex < len(session.Questions) {
		msgIndex := session.QuestionIndex - 1
		if msgIndex > len(transitionMessages)-1 {
			msgIndex = len(transitionMessages) - 1
		}
		transition := transitionMessages[msgIndex]
		nextQuestion := session.Questions[session.QuestionIndex]

		if session.QuestionIndex == 1 {
			if err := s.interviewRepo.UpdateStatus(id, models.StatusAnswering); err != nil {
				log.Printf("⚠️ Failed to update interview %s status: %v", id, err)
			}
		}

		session.Waiting = true
		session.Conversation = append(session.Conversation,
			models.Turn{Role: roleAI, Message: transition},
			models.Turn{Role: roleAI, Message: nextQuestion},
		)

		return &models.AnswerResponse{
			Message:  transition,
			Question: nextQuestion,
			Complete: false,
			Progress: models.Progress{Asked: session.QuestionIndex + 1, Total: session.NumQuestions},
		}, nil
	}

	// Interview complete
	session.Waiting = false
	session.Complete = true
	session.Conversation = append(session.Conversation, models.Turn{Role: roleAI, Message: closingMessage})

	if err := s.interviewRepo.UpdateStatus(id, models.StatusScoring); err != nil {
		log.Printf("⚠️ Failed to update interview %s status: %v", id, err)
	}

	if s.worker != nil {
		s.worker.EnqueueJob(id)
	}

	return &models.AnswerResponse{
		Message:  closingMessage,
		Complete: true,
		Progress: models.Progress{Asked: session.NumQuestions, Total: session.NumQuestions},
	}, nil
}

// Get implements InterviewService.
func (s *interviewService) Get(id uuid.UUID) (*models.InterviewStateResponse, error) {
	session, err := s.findSession(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	status := models.StatusActive
	if session.QuestionIndex > 0 {
		status = models.StatusAnswering
	}
	if session.Complete {
		status = models.StatusScoring
		if session.Scored {
			status = models.StatusCompleted
		}
	}

	asked := session.QuestionIndex + 1
	if asked > session.NumQuestions {
		asked = session.NumQuestions
	}

	turns := make([]models.Turn, len(session.Conversation))
	copy(turns, session.Conversation)

	return &models.InterviewStateResponse{
		InterviewID: session.ID,
		Status:      status,
		Complete:    session.Complete,
		Progress:    models.Progress{Asked: asked, Total: session.NumQuestions},
		Turns:       turns,
	}, nil
}

// Result implements InterviewService. Scoring runs at most once per
// session; concurrent callers and the background worker share it.
func (s *interviewService) Result(ctx context.Context, id uuid.UUID) (*models.ResultResponse, error) {
	session, err := s.findSession(id)
	if err != nil {
		// Sessions live in memory; after a restart only the stored row
		// remains.
		interview, findErr := s.interviewRepo.FindByID(id)
		if findErr != nil || interview.Score == nil || interview.Feedback == nil {
			return nil, err
		}
		return &models.ResultResponse{
			InterviewID: interview.ID,
			Score:       *interview.Score,
			Feedback:    *interview.Feedback,
		}, nil
	}

	session.mu.Lock()
	complete := session.Complete
	session.mu.Unlock()

	if !complete {
		return nil, ErrInterviewNotComplete
	}

	s.ensureScored(ctx, session)

	session.mu.Lock()
	defer session.mu.Unlock()

	return &models.ResultResponse{
		InterviewID: session.ID,
		Score:       session.Score,
		Feedback:    session.Feedback,
	}, nil
}

// ScoreSession implements SessionScorer for the background worker.
func (s *interviewService) ScoreSession(ctx context.Context, interviewID uuid.UUID) error {
	session, err := s.findSession(interviewID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	complete := session.Complete
	session.mu.Unlock()

	if !complete {
		return ErrInterviewNotComplete
	}

	s.ensureScored(ctx, session)
	return nil
}

// Transcript implements InterviewService.
func (s *interviewService) Transcript(ctx context.Context, id uuid.UUID) (string, error) {
	session, err := s.findSession(id)
	if err != nil {
		interview, findErr := s.interviewRepo.FindByID(id)
		if findErr != nil || interview.Transcript == nil {
			return "", err
		}
		return *interview.Transcript, nil
	}

	session.mu.Lock()
	complete := session.Complete
	session.mu.Unlock()

	if !complete {
		return "", ErrInterviewNotComplete
	}

	s.ensureScored(ctx, session)

	session.mu.Lock()
	defer session.mu.Unlock()

	return buildTranscript(session), nil
}

// AddNote implements InterviewService.
func (s *interviewService) AddNote(id uuid.UUID, text string) error {
	session, err := s.findSession(id)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("note must not be empty")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.VoiceNotes = append(session.VoiceNotes, text)
	return nil
}

// Chat implements InterviewService. The chat runs alongside the main
// interview flow and keeps its own history.
func (s *interviewService) Chat(ctx context.Context, id uuid.UUID, message string) (string, error) {
	session, err := s.findSession(id)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	session.mu.Lock()
	messages := make([]ChatMessage, 0, len(session.ChatHistory)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: s.prompts.BuildChatSystemPrompt(session.Summary)})
	messages = append(messages, session.ChatHistory...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})
	session.mu.Unlock()

	reply, err := s.llm.ChatCompletion(ctx, messages, chatTemperature, chatMaxTokens)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}

	session.mu.Lock()
	session.ChatHistory = append(session.ChatHistory,
		ChatMessage{Role: "user", Content: message},
		ChatMessage{Role: "assistant", Content: reply},
	)
	session.mu.Unlock()

	return reply, nil
}

func (s *interviewService) findSession(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrInterviewNotFound
	}
	return session, nil
}

// ensureScored runs the scorer exactly once per session and persists
// the outcome.
func (s *interviewService) ensureScored(ctx context.Context, session *Session) {
	session.scoreOnce.Do(func() {
		session.mu.Lock()
		questions := session.Questions
		var answers []string
		for _, turn := range session.Conversation {
			if turn.Role == roleUser {
				answers = append(answers, turn.Message)
			}
		}
		session.mu.Unlock()

		score, feedback := s.scorer.Score(ctx, questions, answers)

		session.mu.Lock()
		session.Score = score
		session.Feedback = feedback
		session.Scored = true
		transcript := buildTranscript(session)
		session.mu.Unlock()

		if err := s.interviewRepo.UpdateResult(session.ID, score, feedback, transcript); err != nil {
			log.Printf("⚠️ Failed to persist result for interview %s: %v", session.ID, err)
		}
	})
}

// buildTranscript renders the plain text transcript. The caller must
// hold the session lock.
func buildTranscript(session *Session) string {
	divider := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("INTERVIEW TRANSCRIPT\n" + divider + "\n\n")
	b.WriteString(fmt.Sprintf("INTERVIEW SCORE: %.1f/10\n", session.Score))
	b.WriteString(fmt.Sprintf("FEEDBACK: %s\n\n", session.Feedback))
	b.WriteString(divider + "\n\n")

	for _, turn := range session.Conversation {
		if turn.Role == roleAI {
			b.WriteString(fmt.Sprintf("AI RECRUITER: %s\n\n", turn.Message))
		} else {
			b.WriteString(fmt.Sprintf("YOU: %s\n\n", turn.Message))
		}
	}

	if len(session.VoiceNotes) > 0 {
		b.WriteString("\n" + divider + "\n")
		b.WriteString("ADDITIONAL VOICE RECORDINGS\n" + divider + "\n\n")
		for i, note := range session.VoiceNotes {
			b.WriteString(fmt.Sprintf("Recording %d: %s\n\n", i+1, note))
		}
	}

	return b.String()
}
