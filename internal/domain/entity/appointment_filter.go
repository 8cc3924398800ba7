package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status   AppointmentStatus   // Single status filter (appointments list)
	Services []string            // Service names (statements registry)
	Statuses []AppointmentStatus // Any of these statuses (statements registry)
	SortBy   string              // id | service | endDate
	Desc     bool
}
