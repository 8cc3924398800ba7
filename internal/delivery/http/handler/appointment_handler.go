package handler

import (
	"context"
	"net/http"
	"strings"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
	"clinic-backoffice/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointments books a visit of one or more services and issues its invoice.
// @Summary Create appointments
// @Tags Registry
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentsRequest true "Visit"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registry/appointments [post]
func (h *AppointmentHandler) CreateAppointments(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.appointmentUsecase.CreateAppointments(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "BookingDto", booking)
}

// ListAppointments handles GET /doctor/appointments?p=&q=&status=&order=
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	page := pagination(r)
	req := dto.AppointmentListRequest{
		Page:    page.Page,
		PerPage: page.PerPage,
		Status:  strings.ToUpper(r.URL.Query().Get("status")),
		Order:   r.URL.Query().Get("order"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, total, err := h.appointmentUsecase.ListAppointments(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "AppointmentPageDto", response.NewPage(page.Page, page.PerPage, total, appointments))
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Complete)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Cancel)
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int64) (*dto.AppointmentResponse, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := apply(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "AppointmentDto", appointment)
}

// Statements handles GET /registry/statements?p=&q=&services=&statuses=&sortBy=&order=
func (h *AppointmentHandler) Statements(w http.ResponseWriter, r *http.Request) {
	req := statementRequest(r)
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	statements, total, err := h.appointmentUsecase.Statements(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "StatementPageDto", response.NewPage(req.Page, req.PerPage, total, statements))
}
