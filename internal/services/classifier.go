package services

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

type Section string

const (
	SectionProfile        Section = "profile"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
)

// headerOrder is the order header patterns are tried against a line.
var headerOrder = []Section{
	SectionProfile,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionLanguages,
	SectionCertifications,
}

// keywordPrecedence is the order keyword buckets are tried when no
// headers were found. First match wins.
var keywordPrecedence = []Section{
	SectionEducation,
	SectionCertifications,
	SectionLanguages,
	SectionProjects,
	SectionExperience,
	SectionSkills,
}

const (
	maxHeaderWords = 4
	minContentLen  = 5
	maxLanguageLen = 100
	minKeywordLen  = 10
)

type Sections map[Section][]string

// Rules drives section classification. The defaults can be overridden
// with a JSON file via CLASSIFIER_RULES_PATH.
type Rules struct {
	Headers          map[Section]string   `json:"headers"`
	Keywords         map[Section][]string `json:"keywords"`
	ResidualKeywords []string             `json:"residual_keywords"`
}

func DefaultRules() *Rules {
	return &Rules{
		Headers: map[Section]string{
			SectionProfile:        `^(profile|summary|about|objective|introduction)$`,
			SectionSkills:         `^(skills?|technical skills?|competenc|technologies|expertise)$`,
			SectionExperience:     `^(experience|work experience|employment|professional experience)$`,
			SectionEducation:      `^(education|academic|qualifications?)$`,
			SectionProjects:       `^(projects?|portfolio|work samples?)$`,
			SectionLanguages:      `^(languages?|linguistic skills?)$`,
			SectionCertifications: `^(certifications?|certificates?|training|courses?)$`,
		},
		Keywords: map[Section][]string{
			SectionSkills: {
				"python", "java", "javascript", "react", "node", "docker", "kubernetes",
				"aws", "azure", "gcp", "ci/cd", "devops", "git", "sql", "mongodb",
				"framework", "library", "database", "tool", "technology", "angular", "vue",
			},
			SectionExperience: {
				"intern", "developer", "engineer", "manager", "analyst", "consultant",
				"worked", "developed", "implemented", "led", "managed", "designed",
			},
			SectionEducation: {
				"university", "college", "school", "degree", "bachelor", "master",
				"diploma", "baccalaureate", "engineering", "computer science", "esprit",
			},
			SectionProjects: {
				"project", "platform", "application", "system", "website", "app",
				"developed", "built", "created", "implemented",
			},
			SectionCertifications: {
				"certification", "certificate", "certified", "ccna", "aws certified",
				"training", "course",
			},
			SectionLanguages: {
				"english", "french", "arabic", "spanish", "german", "fluent", "native",
			},
		},
		ResidualKeywords: []string{"tunis", "intern", "engineer"},
	}
}

// LoadRules reads a rules override from a JSON file. An empty path
// returns the defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return rules, nil
}

type ClassifierService interface {
	Classify(lines []string) Sections
}

type classifierService struct {
	rules    *Rules
	headers  map[Section]*regexp.Regexp
	yearRe   *regexp.Regexp
	numberRe *regexp.Regexp
}

func NewClassifierService(rules *Rules) (ClassifierService, error) {
	if rules == nil {
		rules = DefaultRules()
	}

	headers := make(map[Section]*regexp.Regexp, len(rules.Headers))
	for section, pattern := range rules.Headers {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid header pattern for %s: %w", section, err)
		}
		headers[section] = re
	}

	return &classifierService{
		rules:    rules,
		headers:  headers,
		yearRe:   regexp.MustCompile(`\d{4}`),
		numberRe: regexp.MustCompile(`^\d+$`),
	}, nil
}

// Classify groups the lines of a resume into sections. It first looks
// for explicit section headers; when none are found it falls back to
// keyword classification.
func (c *classifierService) Classify(lines []string) Sections {
	sections := newSections()

	var currentSection Section
	var buffer []string

	for _, line := range lines {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		isHeader := false
		if len(strings.Fields(line)) <= maxHeaderWords {
			for _, section := range headerOrder {
				if c.headers[section].MatchString(lineLower) {
					if currentSection != "" && len(buffer) > 0 {
						sections[currentSection] = append(sections[currentSection], buffer...)
					}
					currentSection = section
					buffer = nil
					isHeader = true
					break
				}
			}
		}

		if !isHeader && line != "" {
			// Drop very short lines and bare page numbers
			if utf8.RuneCountInString(line) > minContentLen && !c.numberRe.MatchString(line) {
				buffer = append(buffer, line)
			}
		}
	}

	if currentSection != "" && len(buffer) > 0 {
		sections[currentSection] = append(sections[currentSection], buffer...)
	}

	if sectionsEmpty(sections) {
		return c.classifyByKeywords(lines)
	}

	return sections
}

// classifyByKeywords buckets lines by keyword match when the resume has
// no recognizable section headers.
func (c *classifierService) classifyByKeywords(lines []string) Sections {
	sections := newSections()

	for _, line := range lines {
		if utf8.RuneCountInString(line) < minKeywordLen {
			continue
		}
		lineLower := strings.ToLower(line)

		matched := false
		for _, section := range keywordPrecedence {
			if !containsAny(lineLower, c.rules.Keywords[section]) {
				continue
			}
			if section == SectionLanguages && utf8.RuneCountInString(line) >= maxLanguageLen {
				continue
			}
			sections[section] = append(sections[section], line)
			matched = true
			break
		}

		// Dated lines mentioning a role or location still read as
		// experience even without a keyword hit
		if !matched && c.yearRe.MatchString(line) && containsAny(lineLower, c.rules.ResidualKeywords) {
			sections[SectionExperience] = append(sections[SectionExperience], line)
		}
	}

	return sections
}

func newSections() Sections {
	return Sections{
		SectionProfile:        nil,
		SectionSkills:         nil,
		SectionExperience:     nil,
		SectionEducation:      nil,
		SectionProjects:       nil,
		SectionLanguages:      nil,
		SectionCertifications: nil,
	}
}

func sectionsEmpty(sections Sections) bool {
	for _, items := range sections {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
