package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	ttsMaxTextLen     = 500
	ttsMinTextLen     = 10
	ttsMinTruncateAt  = 100
	ttsRequestTimeout = 30 * time.Second
)

var ErrTextTooShort = errors.New("text too short for TTS")

var (
	markdownHeaderRe = regexp.MustCompile(`##\s+[^\n]+`)
	emojiRe          = regexp.MustCompile(`[🎯💼🚀🎓🌐📜👤📄⚠️💡✅❓]`)
)

// TTSService synthesizes speech for interviewer messages.
type TTSService interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type ttsService struct {
	baseURL    string
	httpClient *http.Client
}

func NewTTSService(baseURL string) TTSService {
	return &ttsService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: ttsRequestTimeout,
		},
	}
}

// Synthesize implements TTSService.
func (t *ttsService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cleanText, err := CleanTTSText(text)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s?ie=UTF-8&client=tw-ob&tl=en&q=%s", t.baseURL, url.QueryEscape(cleanText))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}

	return audio, nil
}

// CleanTTSText strips Markdown formatting and emoji, and truncates the
// text to a length the TTS endpoint accepts.
func CleanTTSText(text string) (string, error) {
	cleanText := strings.NewReplacer("**", "", "*", "", "-", "", "•", "").Replace(text)
	cleanText = strings.TrimSpace(cleanText)
	cleanText = markdownHeaderRe.ReplaceAllString(cleanText, "")
	cleanText = emojiRe.ReplaceAllString(cleanText, "")

	if runes := []rune(cleanText); len(runes) > ttsMaxTextLen {
		cleanText = string(runes[:ttsMaxTextLen])
		// Cut at the last sentence boundary when one is far enough in
		if lastPeriod := strings.LastIndex(cleanText, "."); lastPeriod >= 0 &&
			utf8.RuneCountInString(cleanText[:lastPeriod]) > ttsMinTruncateAt {
			cleanText = cleanText[:lastPeriod+1]
		}
	}

	cleanText = strings.Join(strings.Fields(cleanText), " ")

	if utf8.RuneCountInString(cleanText) < ttsMinTextLen {
		return "", ErrTextTooShort
	}

	return cleanText, nil
}
