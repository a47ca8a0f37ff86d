package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"
)

const (
	scoringTemperature = 0.3
	scoringMaxTokens   = 300

	defaultScore           = 7.0
	defaultParsedFeedback  = "Good effort in the interview. Keep practicing to improve your responses."
	defaultFailureFeedback = "Thank you for completing the interview. Your responses showed good understanding of the topics discussed."
)

var (
	scoreRe    = regexp.MustCompile(`(?i)SCORE:\s*(\d+(?:\.\d+)?)`)
	feedbackRe = regexp.MustCompile(`(?is)FEEDBACK:\s*(.+)`)
)

// ScorerService evaluates a finished interview. Score never fails; when
// the LLM is unreachable or returns garbage a neutral result comes back.
type ScorerService interface {
	Score(ctx context.Context, questions, answers []string) (float64, string)
}

type scorerService struct {
	llm       LLMClient
	prompts   *PromptBuilder
	knowledge KnowledgeService
}

func NewScorerService(llm LLMClient, prompts *PromptBuilder, knowledge KnowledgeService) ScorerService {
	return &scorerService{
		llm:       llm,
		prompts:   prompts,
		knowledge: knowledge,
	}
}

// Score implements ScorerService.
func (s *scorerService) Score(ctx context.Context, questions, answers []string) (float64, string) {
	knowledgeContext := ""
	if s.knowledge != nil {
		knowledgeContext = s.knowledge.RetrieveContext(ctx, "interview scoring rubric and evaluation criteria")
	}

	prompt := s.prompts.BuildScoringPrompt(questions, answers, knowledgeContext)
	messages := []ChatMessage{
		{Role: "system", Content: ScoringSystemPrompt},
		{Role: "user", Content: prompt},
	}

	evaluation, err := s.llm.ChatCompletion(ctx, messages, scoringTemperature, scoringMaxTokens)
	if err != nil {
		log.Printf("❌ Interview scoring failed: %v. Using neutral score.", err)
		return defaultScore, defaultFailureFeedback
	}

	return parseEvaluation(evaluation)
}

func parseEvaluation(evaluation string) (float64, string) {
	score := defaultScore
	if m := scoreRe.FindStringSubmatch(evaluation); m != nil {
		if parsed, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = clampScore(parsed)
		}
	}

	feedback := defaultParsedFeedback
	if m := feedbackRe.FindStringSubmatch(evaluation); m != nil {
		feedback = strings.TrimSpace(m[1])
	}

	return score, feedback
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
