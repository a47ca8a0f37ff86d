package models

import "github.com/google/uuid"

type UploadResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Summary    string    `json:"summary"`
}

type SummarizeRequest struct {
	DocumentID string `json:"document_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

type SummarizeResponse struct {
	Summary  string              `json:"summary"`
	Sections map[string][]string `json:"sections"`
}

type StartInterviewRequest struct {
	DocumentID   string `json:"document_id,omitempty"`
	Summary      string `json:"summary,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

type StartInterviewResponse struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Message     string    `json:"message"`
	Question    string    `json:"question"`
	Progress    Progress  `json:"progress"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type AnswerResponse struct {
	Message  string   `json:"message"`
	Question string   `json:"question,omitempty"`
	Complete bool     `json:"complete"`
	Progress Progress `json:"progress"`
}

type Progress struct {
	Asked int `json:"asked"`
	Total int `json:"total"`
}

type InterviewStateResponse struct {
	InterviewID uuid.UUID       `json:"interview_id"`
	Status      InterviewStatus `json:"status"`
	Complete    bool            `json:"complete"`
	Progress    Progress        `json:"progress"`
	Turns       []Turn          `json:"turns"`
}

type Turn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type ResultResponse struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Score       float64   `json:"score"`
	Feedback    string    `json:"feedback"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type TTSRequest struct {
	Text string `json:"text"`
}

type STTResponse struct {
	Text string `json:"text"`
}
