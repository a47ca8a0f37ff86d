package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimelineEntry is the dominant emotion detected for one second of
// video.
type TimelineEntry struct {
	Second  int    `json:"second"`
	Emotion string `json:"emotion"`
}

type EmotionReport struct {
	DominantEmotion string             `json:"dominant_emotion"`
	EmotionSummary  map[string]float64 `json:"emotion_summary"`
	Timeline        []TimelineEntry    `json:"timeline"`
}

// EmotionService sends interview videos to the facial analysis model
// and aggregates its per-second timeline into a report.
type EmotionService interface {
	Analyze(ctx context.Context, videoPath string) (*EmotionReport, error)
}

type emotionService struct {
	apiURL     string
	httpClient *http.Client
}

func NewEmotionService(apiURL string) EmotionService {
	return &emotionService{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type analyzerResponse struct {
	Timeline []TimelineEntry `json:"timeline"`
}

// Analyze implements EmotionService.
func (e *emotionService) Analyze(ctx context.Context, videoPath string) (*EmotionReport, error) {
	timeline, err := e.fetchTimeline(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	if len(timeline) == 0 {
		return nil, fmt.Errorf("no faces detected in video")
	}

	return BuildEmotionReport(timeline), nil
}

func (e *emotionService) fetchTimeline(ctx context.Context, videoPath string) ([]TimelineEntry, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(videoPath))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyzer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emotion analyzer returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed analyzerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analyzer response: %w", err)
	}

	return parsed.Timeline, nil
}

// BuildEmotionReport turns a per-second emotion timeline into ratio
// buckets and a dominant emotion. Ties break alphabetically so the
// result is deterministic.
func BuildEmotionReport(timeline []TimelineEntry) *EmotionReport {
	counts := make(map[string]int)
	for _, entry := range timeline {
		counts[entry.Emotion]++
	}

	total := len(timeline)
	summary := make(map[string]float64, len(counts))
	for emotion, count := range counts {
		summary[emotion] = math.Round(float64(count)/float64(total)*100) / 100
	}

	emotions := make([]string, 0, len(summary))
	for emotion := range summary {
		emotions = append(emotions, emotion)
	}
	sort.Strings(emotions)

	dominant := ""
	best := -1.0
	for _, emotion := range emotions {
		if summary[emotion] > best {
			best = summary[emotion]
			dominant = emotion
		}
	}

	return &EmotionReport{
		DominantEmotion: dominant,
		EmotionSummary:  summary,
		Timeline:        timeline,
	}
}
