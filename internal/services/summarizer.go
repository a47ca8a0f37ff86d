package services

import "strings"

type SummarizerService interface {
	Summarize(text string) string
	Analyze(text string) (string, Sections)
}

type summarizerService struct {
	classifier ClassifierService
	formatter  FormatterService
}

func NewSummarizerService(classifier ClassifierService, formatter FormatterService) SummarizerService {
	return &summarizerService{
		classifier: classifier,
		formatter:  formatter,
	}
}

// Summarize turns raw resume text into a structured Markdown summary.
func (s *summarizerService) Summarize(text string) string {
	summary, _ := s.Analyze(text)
	return summary
}

// Analyze returns the Markdown summary together with the classified
// sections it was built from.
func (s *summarizerService) Analyze(text string) (string, Sections) {
	lines := splitLines(text)
	sections := s.classifier.Classify(lines)
	return s.formatter.Format(sections, lines), sections
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
