package model

import "github.com/google/uuid"

// NotifyVerifiedPayload is the payload of TypeNotifyVerified.
type NotifyVerifiedPayload struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
}

// RedactDocumentsPayload is the payload of TypeRedactDocuments. Zero RetentionDays uses the configured window.
type RedactDocumentsPayload struct {
	RetentionDays int `json:"retention_days,omitempty"`
}
