package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// TranscribeService sends audio to the speech model for forced-English
// transcription.
type TranscribeService interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type transcribeService struct {
	apiURL     string
	httpClient *http.Client
}

func NewTranscribeService(apiURL string) TranscribeService {
	return &transcribeService{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe implements TranscribeService.
func (t *transcribeService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("failed to build transcribe request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to build transcribe request: %w", err)
	}

	// Output is always English regardless of the spoken language
	writer.WriteField("task", "translate")
	writer.WriteField("language", "en")
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build transcribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create transcribe request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcribe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcribe response: %w", err)
	}

	return parsed.Text, nil
}
