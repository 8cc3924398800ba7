package dto

import (
	"io"
	"time"
)

// Request DTOs

// CreateMedicalRecordRequest is read from a multipart form; analysis results come as files.
type CreateMedicalRecordRequest struct {
	Title      string  `validate:"required,max=255"`
	RecordType string  `validate:"required,oneof=DIAGNOSIS ANALYSIS_RESULTS NECESSARY_EXAMINATIONS"`
	Conclusion string  `validate:"required_if=RecordType DIAGNOSIS"`
	ServiceIDs []int64 `validate:"required_if=RecordType NECESSARY_EXAMINATIONS,dive,min=1"`
	Files      []UploadedFile
}

type UploadedFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// Response DTOs

type MedicalRecordResponse struct {
	ID         int64                    `json:"id"`
	PatientID  int64                    `json:"patientId"`
	Title      string                   `json:"title"`
	RecordType string                   `json:"recordType"`
	Conclusion string                   `json:"conclusion,omitempty"`
	Links      []string                 `json:"links,omitempty"`
	Services   []ServiceSummaryResponse `json:"services,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
}
