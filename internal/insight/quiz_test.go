package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuizFromSkills(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("Experienced with Python and Docker in production")

	require.NoError(t, err)
	assert.NotEmpty(t, quiz.QuizID)
	// Three questions per detected skill
	assert.Len(t, quiz.Questions, 6)

	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.Options)
		assert.Contains(t, []string{"mcq", "tf"}, q.Type)
	}
}

func TestGenerateQuizWholeWordMatching(t *testing.T) {
	svc := NewQuizService()

	// "javascript" must not also count as "java"
	quiz, err := svc.Generate("I write javascript every day for my work")

	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		assert.NotContains(t, q.Question, "JVM")
	}
}

func TestGenerateQuizCapsAtTen(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("python java angular flask sql docker aws react kotlin html css")

	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 10)

	// Grading covers exactly the served questions
	result, err := svc.Submit(quiz.QuizID, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
}

func TestGenerateQuizEmptyText(t *testing.T) {
	svc := NewQuizService()

	_, err := svc.Generate("   \n\t ")

	assert.Error(t, err)
}

func TestGenerateQuizNoKnownSkills(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("I enjoy gardening and carpentry on weekends")

	require.NoError(t, err)
	assert.Empty(t, quiz.Questions)
}

func TestSubmitQuiz(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("Python developer")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 3)

	// Answer every question with its first option, one as a numeric
	// string to exercise coercion
	answers := []SubmittedAnswer{
		{ID: quiz.Questions[0].ID, Answer: float64(0)},
		{ID: quiz.Questions[1].ID, Answer: "0"},
	}

	result, err := svc.Submit(quiz.QuizID, answers)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Feedback, 3)

	byID := make(map[string]FeedbackEntry)
	for _, entry := range result.Feedback {
		byID[entry.ID] = entry
	}

	require.Contains(t, byID, quiz.Questions[2].ID)
	assert.Equal(t, "no answer submitted", byID[quiz.Questions[2].ID].Reason)

	for _, id := range []string{quiz.Questions[0].ID, quiz.Questions[1].ID} {
		entry := byID[id]
		require.NotNil(t, entry.CorrectIndex)
		require.NotNil(t, entry.SubmittedIndex)
		assert.Equal(t, 0, *entry.SubmittedIndex)
		assert.Equal(t, entry.Correct, *entry.CorrectIndex == 0)
	}
}

func TestSubmitQuizInvalidAnswerType(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("Docker user")
	require.NoError(t, err)

	result, err := svc.Submit(quiz.QuizID, []SubmittedAnswer{
		{ID: quiz.Questions[0].ID, Answer: []string{"not", "an", "index"}},
	})
	require.NoError(t, err)

	var found bool
	for _, entry := range result.Feedback {
		if entry.ID == quiz.Questions[0].ID {
			found = true
			assert.False(t, entry.Correct)
			assert.Equal(t, "invalid answer type", entry.Reason)
		}
	}
	assert.True(t, found)
}

func TestSubmitQuizUnknownID(t *testing.T) {
	svc := NewQuizService()

	_, err := svc.Submit("not-a-quiz", nil)

	assert.ErrorIs(t, err, ErrInvalidQuizID)
}

func TestCoerceIndex(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   int
		wantOK bool
	}{
		{float64(2), 2, true},
		{1, 1, true},
		{"3", 3, true},
		{" 0 ", 0, true},
		{"abc", 0, false},
		{nil, 0, false},
		{[]int{1}, 0, false},
	}

	for _, tt := range tests {
		got, ok := coerceIndex(tt.in)
		assert.Equal(t, tt.wantOK, ok)
		if ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestSubmitFeedbackFollowsQuestionOrder(t *testing.T) {
	svc := NewQuizService()

	quiz, err := svc.Generate("Python and Docker in production")
	require.NoError(t, err)

	var answers []SubmittedAnswer
	for _, q := range quiz.Questions {
		answers = append(answers, SubmittedAnswer{ID: q.ID, Answer: float64(0)})
	}

	result, err := svc.Submit(quiz.QuizID, answers)
	require.NoError(t, err)
	require.Len(t, result.Feedback, len(quiz.Questions))

	// Feedback comes back in the order the quiz was presented
	for i, entry := range result.Feedback {
		assert.Equal(t, quiz.Questions[i].ID, entry.ID)
	}
}
