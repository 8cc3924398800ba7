package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-backoffice/pkg/apperror"
)

const (
	PayloadTypeError      = "ErrorResponseDto"
	PayloadTypeValidation = "ValidationErrorDto"
	PayloadTypeMessage    = "MessageDto"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	PayloadType string      `json:"payloadType"`
	Payload     interface{} `json:"payload"`
}

type ErrorPayload struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

type MessagePayload struct {
	Detail string `json:"detail"`
}

// Page is the payload of paginated listings.
type Page struct {
	Page       int         `json:"page"`
	PerPage    int         `json:"perPage"`
	TotalPages int         `json:"totalPages"`
	Entries    interface{} `json:"entries"`
}

func NewPage(page, perPage int, total int64, entries interface{}) Page {
	return Page{
		Page:       page,
		PerPage:    perPage,
		TotalPages: TotalPages(total, perPage),
		Entries:    entries,
	}
}

// TotalPages returns ceil(total / perPage).
func TotalPages(total int64, perPage int) int {
	if perPage < 1 {
		return 0
	}
	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return totalPages
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, payloadType string, payload interface{}) {
	JSON(w, statusCode, Envelope{
		PayloadType: payloadType,
		Payload:     payload,
	})
}

func Message(w http.ResponseWriter, statusCode int, detail string) {
	Success(w, statusCode, PayloadTypeMessage, MessagePayload{Detail: detail})
}

func Error(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, Envelope{
		PayloadType: PayloadTypeError,
		Payload:     ErrorPayload{Detail: detail},
	})
}

func ValidationError(w http.ResponseWriter, errors map[string]string) {
	JSON(w, http.StatusBadRequest, Envelope{
		PayloadType: PayloadTypeValidation,
		Payload: ErrorPayload{
			Detail: "Validation failed",
			Errors: errors,
		},
	})
}

func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	Error(w, http.StatusNotFound, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, detail)
}

func Forbidden(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Forbidden"
	}
	Error(w, http.StatusForbidden, detail)
}

// FromError writes the response for an error returned by a usecase. Errors without a kind are
// reported as a generic 500 so storage details never reach the client.
func FromError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		InternalServerError(w, "")
		return
	}
	Error(w, apperror.HTTPStatus(appErr.Kind), appErr.Message)
}
