package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusActive    InterviewStatus = "active"
	StatusAnswering InterviewStatus = "answering"
	StatusScoring   InterviewStatus = "scoring"
	StatusCompleted InterviewStatus = "completed"
)

// Interview is the persisted record of a finished session. Live sessions
// stay in memory until they complete.
type Interview struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID   *uuid.UUID      `gorm:"type:uuid" json:"document_id,omitempty"`
	Status       InterviewStatus `gorm:"not null;default:'active'" json:"status"`
	NumQuestions int             `gorm:"not null" json:"num_questions"`
	Score        *float64        `gorm:"type:decimal(4,2)" json:"score,omitempty"`
	Feedback     *string         `gorm:"type:text" json:"feedback,omitempty"`
	Transcript   *string         `gorm:"type:text" json:"transcript,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document *Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
