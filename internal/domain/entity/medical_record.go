package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type RecordType string

const (
	RecordTypeDiagnosis             RecordType = "DIAGNOSIS"
	RecordTypeAnalysisResults       RecordType = "ANALYSIS_RESULTS"
	RecordTypeNecessaryExaminations RecordType = "NECESSARY_EXAMINATIONS"
)

// MaxAnalysisFiles is the number of files one analysis record may link to.
const MaxAnalysisFiles = 5

var ErrInvalidRecord = errors.New("invalid medical record")

// RecordContent is the payload of a medical record. Exactly one variant exists per record.
type RecordContent interface {
	Type() RecordType
	validate() error
}

type Diagnosis struct {
	Conclusion string
}

func (Diagnosis) Type() RecordType { return RecordTypeDiagnosis }

func (d Diagnosis) validate() error {
	if strings.TrimSpace(d.Conclusion) == "" {
		return fmt.Errorf("%w: diagnosis conclusion is required", ErrInvalidRecord)
	}
	return nil
}

type AnalysisResults struct {
	Links []string
}

func (AnalysisResults) Type() RecordType { return RecordTypeAnalysisResults }

func (a AnalysisResults) validate() error {
	if len(a.Links) == 0 {
		return fmt.Errorf("%w: at least one analysis file is required", ErrInvalidRecord)
	}
	if len(a.Links) > MaxAnalysisFiles {
		return fmt.Errorf("%w: at most %d analysis files are allowed", ErrInvalidRecord, MaxAnalysisFiles)
	}
	return nil
}

type NecessaryExaminations struct {
	ServiceIDs []int64
}

func (NecessaryExaminations) Type() RecordType { return RecordTypeNecessaryExaminations }

func (n NecessaryExaminations) validate() error {
	if len(n.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one examination is required", ErrInvalidRecord)
	}
	return nil
}

// MedicalRecord stores the variant in RecordType + Payload; examinations are kept as a
// service association.
type MedicalRecord struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  int64      `gorm:"not null;index" json:"patient_id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	RecordType RecordType `gorm:"type:varchar(30);not null" json:"record_type"`
	Payload    JSON       `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Services []Service `gorm:"many2many:medical_record_services;" json:"services,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// NewMedicalRecord validates the content and builds an unsaved record for it.
func NewMedicalRecord(patientID int64, title string, content RecordContent) (*MedicalRecord, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRecord)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidRecord)
	}
	if err := content.validate(); err != nil {
		return nil, err
	}

	record := &MedicalRecord{
		PatientID:  patientID,
		Title:      title,
		RecordType: content.Type(),
	}

	switch c := content.(type) {
	case Diagnosis:
		record.Payload = JSON{"conclusion": c.Conclusion}
	case AnalysisResults:
		record.Payload = JSON{"links": c.Links}
	case NecessaryExaminations:
		for _, id := range c.ServiceIDs {
			record.Services = append(record.Services, Service{ID: id})
		}
	}
	return record, nil
}

// Content decodes the stored variant.
func (r *MedicalRecord) Content() (RecordContent, error) {
	switch r.RecordType {
	case RecordTypeDiagnosis:
		conclusion, _ := r.Payload["conclusion"].(string)
		return Diagnosis{Conclusion: conclusion}, nil
	case RecordTypeAnalysisResults:
		return AnalysisResults{Links: stringSlice(r.Payload["links"])}, nil
	case RecordTypeNecessaryExaminations:
		ids := make([]int64, 0, len(r.Services))
		for _, s := range r.Services {
			ids = append(ids, s.ID)
		}
		return NecessaryExaminations{ServiceIDs: ids}, nil
	}
	return nil, fmt.Errorf("%w: unknown record type %q", ErrInvalidRecord, r.RecordType)
}

func stringSlice(v interface{}) []string {
	switch links := v.(type) {
	case []string:
		return links
	case []interface{}:
		out := make([]string, 0, len(links))
		for _, l := range links {
			if s, ok := l.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
