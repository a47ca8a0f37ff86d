package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) ClassifierService {
	t.Helper()
	classifier, err := NewClassifierService(DefaultRules())
	require.NoError(t, err)
	return classifier
}

func TestClassifyByHeaders(t *testing.T) {
	classifier := newTestClassifier(t)

	lines := []string{
		"Skills",
		"Python, Go, Docker",
		"Kubernetes and AWS",
		"Education",
		"Bachelor of Computer Science, 2020",
		"Experience",
		"Software Engineer at Acme Corp",
	}

	sections := classifier.Classify(lines)

	assert.Equal(t, []string{"Python, Go, Docker", "Kubernetes and AWS"}, sections[SectionSkills])
	assert.Equal(t, []string{"Bachelor of Computer Science, 2020"}, sections[SectionEducation])
	assert.Equal(t, []string{"Software Engineer at Acme Corp"}, sections[SectionExperience])
	assert.Empty(t, sections[SectionProjects])
}

func TestClassifyHeaderVariants(t *testing.T) {
	classifier := newTestClassifier(t)

	tests := []struct {
		header  string
		section Section
	}{
		{"TECHNICAL SKILLS", SectionSkills},
		{"Work Experience", SectionExperience},
		{"Academic", SectionEducation},
		{"Portfolio", SectionProjects},
		{"Linguistic Skills", SectionLanguages},
		{"Certificates", SectionCertifications},
		{"About", SectionProfile},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			sections := classifier.Classify([]string{tt.header, "some content line here"})
			assert.Equal(t, []string{"some content line here"}, sections[tt.section])
		})
	}
}

func TestClassifyLongLineIsNotHeader(t *testing.T) {
	classifier := newTestClassifier(t)

	// More than four words never reads as a header, even when the
	// pattern would match.
	sections := classifier.Classify([]string{
		"Skills",
		"skills with python and docker and more",
	})

	assert.Equal(t, []string{"skills with python and docker and more"}, sections[SectionSkills])
}

func TestClassifyDropsShortLinesAndPageNumbers(t *testing.T) {
	classifier := newTestClassifier(t)

	sections := classifier.Classify([]string{
		"Skills",
		"ab",
		"2",
		"1234",
		"Python and Docker",
	})

	assert.Equal(t, []string{"Python and Docker"}, sections[SectionSkills])
}

func TestClassifyByKeywordsFallback(t *testing.T) {
	classifier := newTestClassifier(t)

	// No headers at all, so every line falls through to keyword
	// classification.
	sections := classifier.Classify([]string{
		"Bachelor degree from Tunis University",
		"Developed a web platform with React",
		"Fluent in English and French",
		"Software engineer intern 2023",
	})

	assert.Equal(t, []string{"Bachelor degree from Tunis University"}, sections[SectionEducation])
	assert.Equal(t, []string{"Developed a web platform with React"}, sections[SectionProjects])
	assert.Equal(t, []string{"Fluent in English and French"}, sections[SectionLanguages])
	assert.Equal(t, []string{"Software engineer intern 2023"}, sections[SectionExperience])
}

func TestClassifyKeywordPrecedence(t *testing.T) {
	classifier := newTestClassifier(t)

	// "university" wins over "project" because education is tried first
	sections := classifier.Classify([]string{
		"University project built with Python",
	})

	assert.Equal(t, []string{"University project built with Python"}, sections[SectionEducation])
	assert.Empty(t, sections[SectionProjects])
}

func TestClassifyLongLanguageLineFallsThrough(t *testing.T) {
	classifier := newTestClassifier(t)

	long := "Fluent in English, built several projects during my time as a developer at a large company where I implemented many systems"
	require.GreaterOrEqual(t, len(long), 100)

	sections := classifier.Classify([]string{long})

	assert.Empty(t, sections[SectionLanguages])
	assert.Equal(t, []string{long}, sections[SectionProjects])
}

func TestClassifyResidualDatedLine(t *testing.T) {
	classifier := newTestClassifier(t)

	sections := classifier.Classify([]string{
		"Summer position in Tunis, 2022",
	})

	assert.Equal(t, []string{"Summer position in Tunis, 2022"}, sections[SectionExperience])
}

func TestClassifySkipsShortKeywordLines(t *testing.T) {
	classifier := newTestClassifier(t)

	sections := classifier.Classify([]string{"python"})

	assert.True(t, sectionsEmpty(sections))
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"headers": {"skills": "^(stack)$"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "^(stack)$", rules.Headers[SectionSkills])
	// Untouched sections keep their defaults
	assert.Equal(t, DefaultRules().Headers[SectionEducation], rules.Headers[SectionEducation])

	classifier, err := NewClassifierService(rules)
	require.NoError(t, err)

	sections := classifier.Classify([]string{"Stack", "Python and Docker"})
	assert.Equal(t, []string{"Python and Docker"}, sections[SectionSkills])
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules("/nonexistent/rules.json")
	assert.Error(t, err)
}

func TestNewClassifierServiceInvalidPattern(t *testing.T) {
	rules := DefaultRules()
	rules.Headers[SectionSkills] = "["

	_, err := NewClassifierService(rules)
	assert.Error(t, err)
}

func TestClassifyIsIdempotent(t *testing.T) {
	svc := newTestClassifier(t)

	lines := []string{
		"Skills",
		"Python, Go, Docker",
		"Education",
		"Bachelor of Computer Science, 2020",
		"Developed a web platform with React",
	}

	first := svc.Classify(lines)
	second := svc.Classify(lines)
	assert.Equal(t, first, second)
}

func TestClassifyAccentedLanguageLineCountsRunes(t *testing.T) {
	svc := newTestClassifier(t)

	// 62 characters but over 100 bytes of UTF-8
	line := "Fluent in French " + strings.Repeat("é", 45)
	sections := svc.Classify([]string{line})

	assert.Equal(t, []string{line}, sections[SectionLanguages])
}
