package model

import (
	"github.com/google/uuid"
)

// AttemptStatus enumerates the states of a proctored exam attempt.
// Transitions are owned by the exam platform; this service only reads them.
type AttemptStatus string

const (
	AttemptStatusCreated       AttemptStatus = "created"
	AttemptStatusReadyToStart  AttemptStatus = "ready_to_start"
	AttemptStatusStarted       AttemptStatus = "started"
	AttemptStatusReadyToSubmit AttemptStatus = "ready_to_submit"
	AttemptStatusSubmitted     AttemptStatus = "submitted"
	AttemptStatusVerified      AttemptStatus = "verified"
	AttemptStatusRejected      AttemptStatus = "rejected"
	AttemptStatusExpired       AttemptStatus = "expired"
	AttemptStatusError         AttemptStatus = "error"
)

// ExamAttemptView is the exam and attempt data the timer widget displays.
type ExamAttemptView struct {
	ExamID    uuid.UUID     `json:"exam_id"`
	StudentID int           `json:"student_id"`
	Title     string        `json:"title"`
	ExamType  *string       `json:"exam_type,omitempty"`
	URLPath   string        `json:"url_path"`
	Status    AttemptStatus `json:"status"`
}

// TimerWidgetQuery holds the optional query parameters of the widget endpoints.
type TimerWidgetQuery struct {
	Locale string `form:"locale" json:"locale" binding:"omitempty,bcp47_language_tag"`
}
