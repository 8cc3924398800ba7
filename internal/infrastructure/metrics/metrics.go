package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters/histograms for booking flows and the HTTP surface.
type BookingMetrics struct {
	appointmentsCreated  prometheus.Counter
	bookingFailures      *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	priceListActivations prometheus.Counter
	requestDuration      *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		appointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "appointments_created_total",
			Help:      "Total appointments created by booking batches",
		}),
		bookingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "failures_total",
			Help:      "Booking batches rejected or aborted, by reason",
		}, []string{"reason"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "notification",
			Name:      "failures_total",
			Help:      "Notifications that could not be delivered",
		}, []string{"kind"}),
		priceListActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "catalog",
			Name:      "price_list_activations_total",
			Help:      "Committed price list activations",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appointmentsCreated, m.bookingFailures, m.notificationFailures, m.priceListActivations, m.requestDuration)
	return m
}

func (m *BookingMetrics) RecordAppointmentsCreated(n int) {
	if m == nil {
		return
	}
	m.appointmentsCreated.Add(float64(n))
}

func (m *BookingMetrics) RecordBookingFailure(reason string) {
	if m == nil {
		return
	}
	m.bookingFailures.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) RecordNotificationFailure(kind string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(kind).Inc()
}

func (m *BookingMetrics) RecordPriceListActivation() {
	if m == nil {
		return
	}
	m.priceListActivations.Inc()
}

func (m *BookingMetrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
