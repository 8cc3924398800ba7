package service

import (
	"bytes"
	"context"
	"html/template"
	"strconv"
	"time"

	"clinic-backoffice/internal/infrastructure/mail"

	"github.com/sirupsen/logrus"
)

var appointmentTemplate = template.Must(template.New("appointment").Parse(`<p>{{.DoctorName}},</p>
<p>Patient {{.PatientName}} has been booked for an appointment with you.</p>
<p>Date: {{.Date}}</p>
<p>Time: {{.Time}}</p>
{{- if .PatientCardURL}}
<p>Medical card: {{.PatientCardURL}}</p>
{{- end}}
<p>Clinic notification service</p>
`))

var verificationTemplate = template.Must(template.New("verification").Parse(`<p>Your verification code is {{.}}.</p>
<p>Clinic team</p>
`))

// AppointmentNotice is what a doctor is told about a new appointment.
type AppointmentNotice struct {
	DoctorEmail string
	DoctorName  string
	PatientName string
	Date        string
	Time        string
	PatientID   int64
}

// NotificationService sends best-effort emails: failures are logged and never returned.
type NotificationService interface {
	NotifyAppointment(ctx context.Context, notice AppointmentNotice)
	NotifyVerificationCode(ctx context.Context, email, code string)
}

// FailureRecorder counts notifications that could not be delivered.
type FailureRecorder interface {
	RecordNotificationFailure(kind string)
}

type notificationService struct {
	sender         mail.EmailSender
	log            *logrus.Logger
	metrics        FailureRecorder
	patientCardURL string
	timeout        time.Duration
}

func NewNotificationService(sender mail.EmailSender, log *logrus.Logger, metrics FailureRecorder, patientCardURL string, timeout time.Duration) NotificationService {
	return &notificationService{
		sender:         sender,
		log:            log,
		metrics:        metrics,
		patientCardURL: patientCardURL,
		timeout:        timeout,
	}
}

func (s *notificationService) NotifyAppointment(ctx context.Context, notice AppointmentNotice) {
	var cardURL string
	if s.patientCardURL != "" {
		cardURL = s.patientCardURL + "/" + strconv.FormatInt(notice.PatientID, 10)
	}

	var body bytes.Buffer
	err := appointmentTemplate.Execute(&body, struct {
		AppointmentNotice
		PatientCardURL string
	}{notice, cardURL})
	if err != nil {
		s.log.Errorf("Failed to render appointment notification: %+v", err)
		s.recordFailure("appointment")
		return
	}

	s.send(ctx, "appointment", mail.EmailMessage{
		To:      notice.DoctorEmail,
		ToName:  notice.DoctorName,
		Subject: "Patient appointment scheduled",
		HTML:    body.String(),
	})
}

func (s *notificationService) NotifyVerificationCode(ctx context.Context, email, code string) {
	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, code); err != nil {
		s.log.Errorf("Failed to render verification email: %+v", err)
		s.recordFailure("verification")
		return
	}

	s.send(ctx, "verification", mail.EmailMessage{
		To:      email,
		Subject: "Your verification code",
		HTML:    body.String(),
	})
}

func (s *notificationService) send(ctx context.Context, kind string, msg mail.EmailMessage) {
	// Delivery must not depend on the request that triggered it.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, msg); err != nil {
		s.log.WithField("kind", kind).Errorf("Failed to send notification to %s: %+v", msg.To, err)
		s.recordFailure(kind)
	}
}

func (s *notificationService) recordFailure(kind string) {
	if s.metrics != nil {
		s.metrics.RecordNotificationFailure(kind)
	}
}
