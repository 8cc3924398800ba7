package dto

// Response DTOs

// DoctorResponse is a doctor as offered to the registry when booking.
type DoctorResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Qualification string   `json:"qualification,omitempty"`
	Services      []string `json:"services"`
}

type AvailableTimesResponse struct {
	DoctorID int64    `json:"doctorId"`
	Date     string   `json:"date"`
	Times    []string `json:"times"`
}
