package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Per-section caps on how many lines make it into the summary.
const (
	maxProfileItems       = 3
	maxEducationItems     = 5
	maxSkillItems         = 20
	maxExperienceItems    = 15
	maxProjectItems       = 12
	maxLanguageItems      = 5
	maxCertificationItems = 8
	maxFallbackLines      = 30
	maxSkillLabelLen      = 30
	maxExperienceTitleLen = 150
	minFallbackLineLen    = 10
)

var bulletPrefixes = []string{"•", "-", "●", "○"}

var experienceDateRe = regexp.MustCompile(`\d{4}|\d{2}/\d{4}`)

type FormatterService interface {
	Format(sections Sections, lines []string) string
}

type formatterService struct{}

func NewFormatterService() FormatterService {
	return &formatterService{}
}

// Format renders classified sections as a Markdown summary. The raw
// lines are used for the fallback rendering when nothing classified.
func (f *formatterService) Format(sections Sections, lines []string) string {
	var b strings.Builder

	if items := sections[SectionProfile]; len(items) > 0 {
		b.WriteString("## Professional Profile\n\n")
		for _, item := range capItems(items, maxProfileItems) {
			b.WriteString(item + "\n\n")
		}
	}

	// Education first, reads better for students and recent grads
	if items := sections[SectionEducation]; len(items) > 0 {
		b.WriteString("## Education\n\n")
		writeBullets(&b, capItems(items, maxEducationItems))
		b.WriteString("\n")
	}

	if items := sections[SectionSkills]; len(items) > 0 {
		b.WriteString("## Technical Skills\n\n")
		for _, item := range capItems(items, maxSkillItems) {
			if label, rest, ok := splitSkillLabel(item); ok {
				b.WriteString(fmt.Sprintf("**%s:** %s\n\n", label, rest))
			} else {
				writeBullet(&b, item, "")
			}
		}
		b.WriteString("\n")
	}

	if items := sections[SectionExperience]; len(items) > 0 {
		b.WriteString("## Professional Experience\n\n")
		for _, item := range capItems(items, maxExperienceItems) {
			// Dated short lines are job title or company headings
			if experienceDateRe.MatchString(item) && utf8.RuneCountInString(item) < maxExperienceTitleLen {
				b.WriteString(fmt.Sprintf("\n**%s**\n", item))
			} else {
				writeBullet(&b, item, "  ")
			}
		}
		b.WriteString("\n")
	}

	if items := sections[SectionProjects]; len(items) > 0 {
		b.WriteString("## Projects\n\n")
		for _, item := range capItems(items, maxProjectItems) {
			// Project titles carry a separator like "Name | Stack"
			if strings.Contains(item, "|") || strings.Contains(item, "–") || strings.Contains(item, "—") {
				b.WriteString(fmt.Sprintf("\n**%s**\n", item))
			} else {
				writeBullet(&b, item, "  ")
			}
		}
		b.WriteString("\n")
	}

	if items := sections[SectionLanguages]; len(items) > 0 {
		b.WriteString("## Languages\n\n")
		writeBullets(&b, capItems(items, maxLanguageItems))
		b.WriteString("\n")
	}

	if items := sections[SectionCertifications]; len(items) > 0 {
		b.WriteString("## Certifications\n\n")
		writeBullets(&b, capItems(items, maxCertificationItems))
		b.WriteString("\n")
	}

	summary := b.String()
	if strings.TrimSpace(summary) == "" {
		summary = f.formatFallback(lines)
	}

	return strings.TrimSpace(summary)
}

func (f *formatterService) formatFallback(lines []string) string {
	var b strings.Builder
	b.WriteString("## CV Content\n\n")
	b.WriteString("Unable to parse CV structure. Here's the extracted content:\n\n")
	for _, line := range capItems(lines, maxFallbackLines) {
		if utf8.RuneCountInString(line) > minFallbackLineLen {
			b.WriteString("- " + line + "\n")
		}
	}
	return b.String()
}

func splitSkillLabel(item string) (string, string, bool) {
	idx := strings.Index(item, ":")
	if idx < 0 || utf8.RuneCountInString(item[:idx]) >= maxSkillLabelLen {
		return "", "", false
	}
	return item[:idx], strings.TrimSpace(item[idx+1:]), true
}

func capItems(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func hasBulletPrefix(item string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(item, prefix) {
			return true
		}
	}
	return false
}

func writeBullet(b *strings.Builder, item, indent string) {
	if hasBulletPrefix(item) {
		b.WriteString(indent + item + "\n")
	} else {
		b.WriteString(indent + "- " + item + "\n")
	}
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		writeBullet(b, item, "")
	}
}
