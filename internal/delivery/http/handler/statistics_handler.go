package handler

import (
	"net/http"

	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/response"
)

type StatisticsHandler struct {
	statisticsUsecase usecase.StatisticsUsecase
}

func NewStatisticsHandler(statisticsUsecase usecase.StatisticsUsecase) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsUsecase: statisticsUsecase,
	}
}

func (h *StatisticsHandler) WeeklyCompleted(w http.ResponseWriter, r *http.Request) {
	days, err := h.statisticsUsecase.WeeklyCompleted(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "DayCountListDto", days)
}

func (h *StatisticsHandler) TodayCumulative(w http.ResponseWriter, r *http.Request) {
	hours, err := h.statisticsUsecase.TodayCumulative(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "HourCountListDto", hours)
}

func (h *StatisticsHandler) DoctorDailyCounts(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	days, err := h.statisticsUsecase.DoctorDailyCounts(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "DayCountListDto", days)
}

func (h *StatisticsHandler) DoctorDailyRevenues(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	days, err := h.statisticsUsecase.DoctorDailyRevenues(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "DayRevenueListDto", days)
}
