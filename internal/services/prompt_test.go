package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuestionPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildQuestionPrompt("## Technical Skills\n\n- Go", 4, "")

	assert.Contains(t, prompt, "generate exactly 4 insightful interview questions")
	assert.Contains(t, prompt, "## Technical Skills")
	assert.Contains(t, prompt, "numbered 1-4")
	assert.NotContains(t, prompt, "Relevant interviewing guidance")
}

func TestBuildQuestionPromptWithKnowledge(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildQuestionPrompt("summary", 3, "Ask about system design tradeoffs.")

	assert.Contains(t, prompt, "Relevant interviewing guidance:\nAsk about system design tradeoffs.")
	// Guidance comes before the closing instruction
	assert.Less(t,
		strings.Index(prompt, "Relevant interviewing guidance"),
		strings.Index(prompt, "Generate exactly 3 interview questions"),
	)
}

func TestBuildScoringPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildScoringPrompt(
		[]string{"Q one?", "Q two?"},
		[]string{"A one"},
		"",
	)

	// Only paired question/answer entries are included
	assert.Contains(t, prompt, "Question 1: Q one?")
	assert.Contains(t, prompt, "Candidate's Response: A one")
	assert.NotContains(t, prompt, "Question 2")
	assert.Contains(t, prompt, "SCORE: [number from 0-10]")
	assert.Contains(t, prompt, "FEEDBACK: [your 2-3 sentence feedback]")
}

func TestBuildChatSystemPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildChatSystemPrompt("## Education\n\n- BSc")

	assert.Contains(t, prompt, "## Education")
}

func TestFormatRAGContext(t *testing.T) {
	assert.Empty(t, FormatRAGContext(nil))

	out := FormatRAGContext([]SearchResult{
		{Text: "first snippet", DocType: "scoring_rubric", Score: 0.92},
	})
	assert.Contains(t, out, "first snippet")
	assert.Contains(t, out, "Context 1")
}
