package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNoSpeech      = errors.New("no speech detected, please try again")
	ErrNotUnderstood = errors.New("could not understand audio, please speak clearly")
)

// STTService transcribes candidate audio answers.
type STTService interface {
	Recognize(ctx context.Context, audio []byte, contentType string) (string, error)
}

type sttService struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewSTTService(apiURL, apiKey string) STTService {
	return &sttService{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type recognizeResponse struct {
	Result []struct {
		Alternative []struct {
			Transcript string `json:"transcript"`
		} `json:"alternative"`
	} `json:"result"`
}

// Recognize implements STTService.
func (s *sttService) Recognize(ctx context.Context, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoSpeech
	}

	reqURL := fmt.Sprintf("%s?client=chromium&lang=en-US&key=%s", s.apiURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create recognize request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech recognition service error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech recognition service error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read recognize response: %w", err)
	}

	// The endpoint streams one JSON object per line; the first line with
	// results carries the transcript.
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var parsed recognizeResponse
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			continue
		}

		for _, result := range parsed.Result {
			if len(result.Alternative) > 0 && result.Alternative[0].Transcript != "" {
				return result.Alternative[0].Transcript, nil
			}
		}
	}

	return "", ErrNotUnderstood
}
