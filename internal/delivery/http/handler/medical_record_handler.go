package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

const (
	maxRecordUploadBytes  = 32 << 20
	recordFormMemoryBytes = 8 << 20
)

type MedicalRecordHandler struct {
	recordUsecase  usecase.MedicalRecordUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase:  recordUsecase,
		validator:      validator,
		maxUploadBytes: maxRecordUploadBytes,
	}
}

func (h *MedicalRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	records, err := h.recordUsecase.ListRecords(r.Context(), patientID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "MedicalRecordListDto", records)
}

// CreateRecord reads a multipart form with the fields title, type, diagnosis,
// examinations (service IDs) and analysisResults (PDF files).
func (h *MedicalRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(recordFormMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Upload is too large")
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := r.MultipartForm
	req := dto.CreateMedicalRecordRequest{
		Title:      formValue(form, "title"),
		RecordType: strings.ToUpper(formValue(form, "type")),
		Conclusion: formValue(form, "diagnosis"),
	}

	for _, raw := range form.Value["examinations"] {
		for _, v := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				response.ValidationError(w, map[string]string{"examinations": "examinations must be service IDs"})
				return
			}
			req.ServiceIDs = append(req.ServiceIDs, id)
		}
	}

	for _, header := range form.File["analysisResults"] {
		file, err := header.Open()
		if err != nil {
			response.BadRequest(w, "Invalid analysis result file")
			return
		}
		defer file.Close()
		req.Files = append(req.Files, dto.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.CreateRecord(r.Context(), patientID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "MedicalRecordDto", record)
}

func formValue(form *multipart.Form, name string) string {
	if values := form.Value[name]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}
