package services

import (
	"context"
	"log"
	"regexp"
	"strings"
)

const (
	questionTemperature = 0.7
	questionMaxTokens   = 500
	minQuestionLen      = 10
)

var questionNumberRe = regexp.MustCompile(`(?i)^(question\s+)?\d+[.):]?\s+`)

// fallbackTechKeywords are the technologies probed for in the summary
// when building fallback questions.
var fallbackTechKeywords = []string{
	"Python", "Java", "JavaScript", "React", "Node", "AWS", "Docker",
	"Kubernetes", "DevOps", "CI/CD", "WebSocket", "WebRTC", "AI", "ML",
}

var genericQuestions = []string{
	"What motivates you in your work?",
	"How do you approach problem-solving in your projects?",
	"Can you describe a challenging situation you faced and how you resolved it?",
	"What are your career goals for the next few years?",
	"How do you stay updated with new technologies and industry trends?",
	"What makes you a good fit for this position?",
}

const fillerQuestion = "Tell me more about your professional experience and skills."

// QuestionService generates interview questions from a resume summary.
// Generate always returns exactly numQuestions questions, falling back
// to deterministic ones when the LLM is unavailable.
type QuestionService interface {
	Generate(ctx context.Context, summary string, numQuestions int) []string
}

type questionService struct {
	llm       LLMClient
	prompts   *PromptBuilder
	knowledge KnowledgeService
}

func NewQuestionService(llm LLMClient, prompts *PromptBuilder, knowledge KnowledgeService) QuestionService {
	return &questionService{
		llm:       llm,
		prompts:   prompts,
		knowledge: knowledge,
	}
}

// Generate implements QuestionService.
func (q *questionService) Generate(ctx context.Context, summary string, numQuestions int) []string {
	knowledgeContext := ""
	if q.knowledge != nil {
		knowledgeContext = q.knowledge.RetrieveContext(ctx, "interview question guidelines for technical candidates")
	}

	prompt := q.prompts.BuildQuestionPrompt(summary, numQuestions, knowledgeContext)
	messages := []ChatMessage{
		{Role: "system", Content: QuestionSystemPrompt},
		{Role: "user", Content: prompt},
	}

	content, err := q.llm.ChatCompletion(ctx, messages, questionTemperature, questionMaxTokens)
	if err != nil {
		log.Printf("❌ Question generation failed: %v. Using fallback questions.", err)
		return q.generateFallback(summary, numQuestions)
	}

	questions := parseNumberedQuestions(content)
	if len(questions) >= numQuestions {
		return questions[:numQuestions]
	}

	log.Printf("⚠️ LLM returned only %d questions, padding with fallback questions", len(questions))
	fallback := q.generateFallback(summary, numQuestions)
	questions = append(questions, fallback[len(questions):]...)
	return questions[:numQuestions]
}

// parseNumberedQuestions extracts numbered lines like "1.", "2)" or
// "Question 3:" from the model output.
func parseNumberedQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if !questionNumberRe.MatchString(line) {
			continue
		}
		question := strings.TrimSpace(questionNumberRe.ReplaceAllString(line, ""))
		if len(question) > minQuestionLen {
			questions = append(questions, question)
		}
	}
	return questions
}

// generateFallback builds questions from the summary content alone. It
// always returns exactly numQuestions entries.
func (q *questionService) generateFallback(summary string, numQuestions int) []string {
	var questions []string
	summaryLower := strings.ToLower(summary)

	hasSkills := strings.Contains(summary, "Skills") || strings.Contains(summary, "Competencies")
	hasExperience := strings.Contains(summary, "Experience") || strings.Contains(summary, "Professional")
	hasProjects := strings.Contains(summary, "Projects")
	hasEducation := strings.Contains(summary, "Education")

	var mentionedTech []string
	for _, tech := range fallbackTechKeywords {
		if strings.Contains(summaryLower, strings.ToLower(tech)) {
			mentionedTech = append(mentionedTech, tech)
		}
	}

	if hasSkills {
		if len(mentionedTech) > 0 {
			if len(mentionedTech) > 3 {
				mentionedTech = mentionedTech[:3]
			}
			questions = append(questions, "Can you elaborate on your experience with "+strings.Join(mentionedTech, ", ")+"?")
		} else {
			questions = append(questions, "What are your strongest technical skills?")
		}
	}

	if hasExperience || hasProjects {
		questions = append(questions, "Can you describe your most impactful project and the challenges you overcame?")
	}

	if hasProjects {
		questions = append(questions, "What technologies did you use in your recent projects and why did you choose them?")
	}

	if strings.Contains(summaryLower, "cloud") || strings.Contains(summaryLower, "devops") {
		questions = append(questions, "What is your experience with cloud platforms and DevOps practices?")
	}

	if hasEducation {
		questions = append(questions, "How has your educational background prepared you for this role?")
	}

	for _, gq := range genericQuestions {
		if len(questions) >= numQuestions {
			break
		}
		if !containsString(questions, gq) {
			questions = append(questions, gq)
		}
	}

	for len(questions) < numQuestions {
		questions = append(questions, fillerQuestion)
	}

	return questions[:numQuestions]
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
