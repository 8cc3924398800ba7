package http

import (
	"net/http"

	"clinic-backoffice/internal/delivery/http/handler"
	"clinic-backoffice/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Patient       *handler.PatientHandler
	Pricing       *handler.PricingHandler
	Appointment   *handler.AppointmentHandler
	Doctor        *handler.DoctorHandler
	PriceList     *handler.PriceListHandler
	Service       *handler.ServiceHandler
	User          *handler.UserHandler
	MedicalRecord *handler.MedicalRecordHandler
	Verification  *handler.VerificationHandler
	Statistics    *handler.StatisticsHandler
	Invoice       *handler.InvoiceHandler
	Document      *handler.DocumentHandler
	AuditLog      *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	metricsHandler    http.Handler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	handlers Handlers,
	metricsHandler http.Handler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		metricsHandler:    metricsHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/services/names", h.Service.ServiceNames).Methods(http.MethodGet)
	public.HandleFunc("/verification", h.Verification.SendCode).Methods(http.MethodPost)
	public.HandleFunc("/verification", h.Verification.Remove).Methods(http.MethodDelete)
	public.HandleFunc("/verification/verify", h.Verification.Verify).Methods(http.MethodGet)

	// Any signed in staff user
	me := api.PathPrefix("/me").Subrouter()
	me.Use(r.authMiddleware.Authenticate)
	me.HandleFunc("", h.User.GetCurrentUser).Methods(http.MethodGet)

	// Registry routes (recorders and managers)
	registry := api.PathPrefix("/registry").Subrouter()
	registry.Use(r.authMiddleware.Authenticate)
	registry.Use(middleware.RequireRegistry)

	registry.HandleFunc("/patients", h.Patient.ListPatients).Methods(http.MethodGet)
	registry.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	registry.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	registry.HandleFunc("/patients/{id}", h.Patient.UpdatePatient).Methods(http.MethodPut)
	registry.HandleFunc("/patients/{id}/discount", h.Patient.GetDiscount).Methods(http.MethodGet)
	registry.HandleFunc("/patients/{id}/appointments", h.Patient.GetAppointments).Methods(http.MethodGet)

	registry.HandleFunc("/doctors/available", h.Doctor.AvailableDoctors).Methods(http.MethodGet)
	registry.HandleFunc("/doctors/{id}/available-times", h.Doctor.AvailableTimes).Methods(http.MethodGet)

	registry.HandleFunc("/cart/price", h.Pricing.PriceCart).Methods(http.MethodPost)
	registry.HandleFunc("/cart/totals", h.Pricing.CalculateTotals).Methods(http.MethodPost)
	registry.HandleFunc("/cart/invoice", h.Document.CartQuote).Methods(http.MethodPost)
	registry.HandleFunc("/appointments", h.Appointment.CreateAppointments).Methods(http.MethodPost)
	registry.HandleFunc("/statements", h.Appointment.Statements).Methods(http.MethodGet)
	registry.HandleFunc("/statements/export", h.Document.ExportStatements).Methods(http.MethodGet)
	registry.HandleFunc("/invoices/{id}", h.Invoice.GetInvoice).Methods(http.MethodGet)
	registry.HandleFunc("/invoices/{id}/export", h.Invoice.ExportInvoice).Methods(http.MethodGet)

	// Owner routes (managers only)
	owner := api.PathPrefix("/owner").Subrouter()
	owner.Use(r.authMiddleware.Authenticate)
	owner.Use(middleware.RequireManager)

	owner.HandleFunc("/price-lists", h.PriceList.ListPriceLists).Methods(http.MethodGet)
	owner.HandleFunc("/price-lists", h.PriceList.CreatePriceList).Methods(http.MethodPost)
	owner.HandleFunc("/price-lists/active", h.PriceList.GetActiveEntries).Methods(http.MethodGet)
	owner.HandleFunc("/price-lists/{id}/archive", h.PriceList.ArchivePriceList).Methods(http.MethodPost)
	owner.HandleFunc("/price-lists/{id}/activate", h.PriceList.ActivatePriceList).Methods(http.MethodPost)

	owner.HandleFunc("/services", h.Service.ListServices).Methods(http.MethodGet)
	owner.HandleFunc("/services", h.Service.CreateService).Methods(http.MethodPost)
	owner.HandleFunc("/services/exists", h.Service.ServiceExists).Methods(http.MethodGet)
	owner.HandleFunc("/services/{id}/archive", h.Service.ArchiveService).Methods(http.MethodPost)
	owner.HandleFunc("/services/{id}/restore", h.Service.RestoreService).Methods(http.MethodPost)

	owner.HandleFunc("/stats/week", h.Statistics.WeeklyCompleted).Methods(http.MethodGet)
	owner.HandleFunc("/stats/cumulate", h.Statistics.TodayCumulative).Methods(http.MethodGet)
	owner.HandleFunc("/stats/doctors/{id}/counts", h.Statistics.DoctorDailyCounts).Methods(http.MethodGet)
	owner.HandleFunc("/stats/doctors/{id}/revenue", h.Statistics.DoctorDailyRevenues).Methods(http.MethodGet)

	owner.HandleFunc("/users", h.User.CreateUser).Methods(http.MethodPost)
	owner.HandleFunc("/users/doctors", h.User.ListDoctors).Methods(http.MethodGet)
	owner.HandleFunc("/users/{id}/type", h.User.ChangeUserType).Methods(http.MethodPut)
	owner.HandleFunc("/users/{id}/services", h.User.AssignServices).Methods(http.MethodPut)

	owner.HandleFunc("/invoices/{id}/export", h.Invoice.ExportInvoice).Methods(http.MethodGet)
	owner.HandleFunc("/audit-logs", h.AuditLog.ListAuditLogs).Methods(http.MethodGet)
	owner.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/appointments", h.Appointment.ListAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/complete", h.Appointment.Complete).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/cancel", h.Appointment.Cancel).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id}/records", h.MedicalRecord.ListRecords).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}/records", h.MedicalRecord.CreateRecord).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
