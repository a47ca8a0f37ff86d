package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const (
	QuestionSystemPrompt = "You are an expert technical recruiter. Generate interview questions based on the candidate's CV. Be specific and relevant."
	ScoringSystemPrompt  = "You are an expert technical recruiter evaluating interview performance. Be fair but constructive in your evaluation."
)

// BuildQuestionPrompt creates the prompt for interview question generation.
// Retrieved guidance is appended when the knowledge base returned any.
func (pb *PromptBuilder) BuildQuestionPrompt(summary string, numQuestions int, knowledgeContext string) string {
	prompt := fmt.Sprintf(`You are an experienced technical recruiter conducting job interviews. Based on the following candidate's CV summary, generate exactly %d insightful interview questions.

Requirements for questions:
1. Be SPECIFIC to the candidate's actual experience, skills, and projects mentioned in their CV
2. Test both technical knowledge and problem-solving abilities
3. Be open-ended to encourage detailed responses
4. Cover different aspects: technical skills, projects, experience, and soft skills
5. Make questions conversational and professional

CV Summary:
%s`, numQuestions, summary)

	if knowledgeContext != "" {
		prompt += fmt.Sprintf("\n\nRelevant interviewing guidance:\n%s", knowledgeContext)
	}

	prompt += fmt.Sprintf(`

Generate exactly %d interview questions. Format each question on a new line, numbered 1-%d. Do not add any other text or explanations.`, numQuestions, numQuestions)

	return prompt
}

// BuildScoringPrompt creates the prompt for evaluating a finished interview.
func (pb *PromptBuilder) BuildScoringPrompt(questions, answers []string, knowledgeContext string) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical recruiter evaluating a candidate's interview performance.\n\nInterview Questions and Candidate's Responses:\n")

	pairs := len(questions)
	if len(answers) < pairs {
		pairs = len(answers)
	}
	for i := 0; i < pairs; i++ {
		b.WriteString(fmt.Sprintf("\nQuestion %d: %s\nCandidate's Response: %s\n", i+1, questions[i], answers[i]))
	}

	if knowledgeContext != "" {
		b.WriteString(fmt.Sprintf("\nRelevant evaluation guidance:\n%s\n", knowledgeContext))
	}

	b.WriteString(`
Based on the candidate's responses, evaluate their performance on the following criteria:
1. Technical knowledge and expertise
2. Communication skills and clarity
3. Problem-solving abilities
4. Relevance and depth of answers
5. Overall professionalism

Provide a score from 0 to 10 (where 10 is excellent) and a brief 2-3 sentence feedback explaining the score.

Format your response EXACTLY as:
SCORE: [number from 0-10]
FEEDBACK: [your 2-3 sentence feedback]`)

	return b.String()
}

// BuildChatSystemPrompt creates the system prompt for the follow-up chat.
func (pb *PromptBuilder) BuildChatSystemPrompt(summary string) string {
	return fmt.Sprintf(`You are an experienced technical interviewer conducting an interview. 
You have reviewed the candidate's CV:

%s

Your role is to:
- Ask insightful follow-up questions based on their responses
- Probe deeper into their technical experience
- Assess their problem-solving abilities
- Be professional but conversational
- Keep responses concise (2-3 sentences max)`, summary)
}

// Helper to clean and format context from RAG results
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
