package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

// MedicalRecordToResponse flattens the record content into the response fields of its type.
func MedicalRecordToResponse(record *entity.MedicalRecord) dto.MedicalRecordResponse {
	response := dto.MedicalRecordResponse{
		ID:         record.ID,
		PatientID:  record.PatientID,
		Title:      record.Title,
		RecordType: string(record.RecordType),
		CreatedAt:  record.CreatedAt,
	}

	content, err := record.Content()
	if err != nil {
		return response
	}
	switch c := content.(type) {
	case entity.Diagnosis:
		response.Conclusion = c.Conclusion
	case entity.AnalysisResults:
		response.Links = c.Links
	case entity.NecessaryExaminations:
		response.Services = ServicesToSummaries(record.Services)
	}
	return response
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = MedicalRecordToResponse(&records[i])
	}
	return responses
}
