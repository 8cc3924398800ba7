package handler

import (
	"net/http"

	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

// AvailableDoctors handles GET /registry/doctors/available?service=
func (h *DoctorHandler) AvailableDoctors(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	if service == "" {
		response.BadRequest(w, "service is required")
		return
	}

	doctors, err := h.doctorUsecase.AvailableDoctors(r.Context(), service)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "DoctorListDto", doctors)
}

// AvailableTimes handles GET /registry/doctors/{id}/available-times?date=
func (h *DoctorHandler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	times, err := h.doctorUsecase.AvailableTimes(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "AvailableTimesDto", times)
}
