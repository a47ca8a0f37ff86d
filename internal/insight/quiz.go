package insight

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const maxQuizQuestions = 10

var ErrInvalidQuizID = errors.New("invalid quiz_id")

var whitespaceRe = regexp.MustCompile(`\s+`)

// quizSkillKeywords are the skills probed for in resume text. Matches
// are whole-word to avoid hits inside longer words.
var quizSkillKeywords = []string{
	"python", "java", "angular", "flask", "sql", "docker", "aws",
	"machine learning", "react", "c++", "kotlin", "html", "css", "javascript",
}

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

type Quiz struct {
	QuizID    string     `json:"quiz_id"`
	Questions []Question `json:"questions"`
}

type SubmittedAnswer struct {
	ID     string      `json:"id"`
	Answer interface{} `json:"answer"`
}

type FeedbackEntry struct {
	ID             string `json:"id"`
	Correct        bool   `json:"correct"`
	Reason         string `json:"reason,omitempty"`
	CorrectIndex   *int   `json:"correct_index,omitempty"`
	SubmittedIndex *int   `json:"submitted_index,omitempty"`
	Expected       string `json:"expected,omitempty"`
	Submitted      string `json:"submitted,omitempty"`
}

type QuizResult struct {
	Score    int             `json:"score"`
	Total    int             `json:"total"`
	Feedback []FeedbackEntry `json:"feedback"`
}

type answerKey struct {
	questionType string
	answerIndex  int
	answerText   string
}

// storedQuiz keeps the answer key plus the question order so grading
// feedback comes back in the order the quiz was presented.
type storedQuiz struct {
	order []string
	keys  map[string]answerKey
}

type bankQuestion struct {
	question     string
	options      []string
	questionType string
	answerIndex  int
}

// QuizService generates skill quizzes from resume text and grades
// submissions. Quizzes live in memory only.
type QuizService interface {
	Generate(text string) (*Quiz, error)
	Submit(quizID string, answers []SubmittedAnswer) (*QuizResult, error)
}

type quizService struct {
	skillPatterns map[string]*regexp.Regexp

	mu      sync.Mutex
	quizzes map[string]storedQuiz
}

func NewQuizService() QuizService {
	patterns := make(map[string]*regexp.Regexp, len(quizSkillKeywords))
	for _, skill := range quizSkillKeywords {
		patterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}

	return &quizService{
		skillPatterns: patterns,
		quizzes:       make(map[string]storedQuiz),
	}
}

// Generate implements QuizService.
func (q *quizService) Generate(text string) (*Quiz, error) {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil, fmt.Errorf("empty CV text after extraction")
	}

	skills := q.extractSkills(text)

	var questions []Question
	answers := make(map[string]answerKey)

	for _, skill := range skills {
		for _, bq := range skillQuestionBank[skill] {
			id := uuid.New().String()
			questions = append(questions, Question{
				ID:       id,
				Question: bq.question,
				Options:  bq.options,
				Type:     bq.questionType,
			})
			answers[id] = answerKey{
				questionType: bq.questionType,
				answerIndex:  bq.answerIndex,
			}
		}
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > maxQuizQuestions {
		for _, dropped := range questions[maxQuizQuestions:] {
			delete(answers, dropped.ID)
		}
		questions = questions[:maxQuizQuestions]
	}

	order := make([]string, len(questions))
	for i, question := range questions {
		order[i] = question.ID
	}

	quizID := uuid.New().String()

	q.mu.Lock()
	q.quizzes[quizID] = storedQuiz{order: order, keys: answers}
	q.mu.Unlock()

	return &Quiz{
		QuizID:    quizID,
		Questions: questions,
	}, nil
}

// extractSkills scans the text for known skill keywords. Iteration
// order is fixed so results are deterministic.
func (q *quizService) extractSkills(text string) []string {
	textLower := strings.ToLower(text)

	var skills []string
	for _, skill := range quizSkillKeywords {
		if q.skillPatterns[skill].MatchString(textLower) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// Submit implements QuizService.
func (q *quizService) Submit(quizID string, answers []SubmittedAnswer) (*QuizResult, error) {
	q.mu.Lock()
	quiz, ok := q.quizzes[quizID]
	q.mu.Unlock()

	if !ok {
		return nil, ErrInvalidQuizID
	}

	submitted := make(map[string]interface{}, len(answers))
	for _, a := range answers {
		submitted[a.ID] = a.Answer
	}

	result := &QuizResult{
		Total:    len(quiz.keys),
		Feedback: make([]FeedbackEntry, 0, len(quiz.keys)),
	}

	for _, qid := range quiz.order {
		key := quiz.keys[qid]
		answer, answered := submitted[qid]
		if !answered {
			result.Feedback = append(result.Feedback, FeedbackEntry{
				ID:     qid,
				Reason: "no answer submitted",
			})
			continue
		}

		switch key.questionType {
		case "mcq", "tf":
			submittedIndex, ok := coerceIndex(answer)
			if !ok {
				result.Feedback = append(result.Feedback, FeedbackEntry{
					ID:     qid,
					Reason: "invalid answer type",
				})
				continue
			}

			correct := submittedIndex == key.answerIndex
			if correct {
				result.Score++
			}
			correctIndex := key.answerIndex
			result.Feedback = append(result.Feedback, FeedbackEntry{
				ID:             qid,
				Correct:        correct,
				CorrectIndex:   &correctIndex,
				SubmittedIndex: &submittedIndex,
			})
		default: // short answer
			expected := strings.ToLower(key.answerText)
			submittedText := strings.ToLower(fmt.Sprintf("%v", answer))
			correct := strings.Contains(submittedText, expected) || strings.Contains(expected, submittedText)
			if correct {
				result.Score++
			}
			result.Feedback = append(result.Feedback, FeedbackEntry{
				ID:        qid,
				Correct:   correct,
				Expected:  expected,
				Submitted: submittedText,
			})
		}
	}

	return result, nil
}

// coerceIndex accepts the option index as a JSON number or a numeric
// string.
func coerceIndex(v interface{}) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	case string:
		index, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return index, true
	default:
		return 0, false
	}
}
