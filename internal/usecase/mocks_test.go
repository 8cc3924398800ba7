package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Repositories

type mockServiceRepository struct{ mock.Mock }

func (m *mockServiceRepository) Create(db *gorm.DB, s *entity.Service) error {
	return m.Called(db, s).Error(0)
}

func (m *mockServiceRepository) Update(db *gorm.DB, s *entity.Service) error {
	return m.Called(db, s).Error(0)
}

func (m *mockServiceRepository) FindByID(db *gorm.DB, id int64) (*entity.Service, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepository) FindByName(db *gorm.DB, name string) (*entity.Service, error) {
	args := m.Called(db, name)
	if v := args.Get(0); v != nil {
		return v.(*entity.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepository) FindByIDs(db *gorm.DB, ids []int64) ([]entity.Service, error) {
	args := m.Called(db, ids)
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *mockServiceRepository) FindNonArchived(db *gorm.DB) ([]entity.Service, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *mockServiceRepository) FindPage(db *gorm.DB, page entity.Pagination) ([]entity.Service, int64, error) {
	args := m.Called(db, page)
	return args.Get(0).([]entity.Service), args.Get(1).(int64), args.Error(2)
}

func (m *mockServiceRepository) FindNames(db *gorm.DB) ([]string, error) {
	args := m.Called(db)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockServiceRepository) CountCompletedAppointments(db *gorm.DB, ids []int64) (map[int64]int64, error) {
	args := m.Called(db, ids)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

type mockPriceListRepository struct{ mock.Mock }

func (m *mockPriceListRepository) Create(db *gorm.DB, p *entity.PriceList) error {
	return m.Called(db, p).Error(0)
}

func (m *mockPriceListRepository) Update(db *gorm.DB, p *entity.PriceList) error {
	return m.Called(db, p).Error(0)
}

func (m *mockPriceListRepository) FindByID(db *gorm.DB, id int64) (*entity.PriceList, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.PriceList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListRepository) FindActive(db *gorm.DB) (*entity.PriceList, error) {
	args := m.Called(db)
	if v := args.Get(0); v != nil {
		return v.(*entity.PriceList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListRepository) FindPage(db *gorm.DB, page entity.Pagination, archived bool) ([]entity.PriceList, int64, error) {
	args := m.Called(db, page, archived)
	return args.Get(0).([]entity.PriceList), args.Get(1).(int64), args.Error(2)
}

func (m *mockPriceListRepository) LockActivation(db *gorm.DB) error {
	return m.Called(db).Error(0)
}

func (m *mockPriceListRepository) DeactivateAll(db *gorm.DB) error {
	return m.Called(db).Error(0)
}

func (m *mockPriceListRepository) Activate(db *gorm.DB, id int64) error {
	return m.Called(db, id).Error(0)
}

type mockPriceListEntryRepository struct{ mock.Mock }

func (m *mockPriceListEntryRepository) Create(db *gorm.DB, e *entity.PriceListEntry) error {
	return m.Called(db, e).Error(0)
}

func (m *mockPriceListEntryRepository) FindByPriceList(db *gorm.DB, priceListID int64) ([]entity.PriceListEntry, error) {
	args := m.Called(db, priceListID)
	return args.Get(0).([]entity.PriceListEntry), args.Error(1)
}

func (m *mockPriceListEntryRepository) FindByPriceListAndServiceNames(db *gorm.DB, priceListID int64, names []string) ([]entity.PriceListEntry, error) {
	args := m.Called(db, priceListID, names)
	return args.Get(0).([]entity.PriceListEntry), args.Error(1)
}

func (m *mockPriceListEntryRepository) FindByPriceListAndService(db *gorm.DB, priceListID, serviceID int64) (*entity.PriceListEntry, error) {
	args := m.Called(db, priceListID, serviceID)
	if v := args.Get(0); v != nil {
		return v.(*entity.PriceListEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceListEntryRepository) FindLatestForService(db *gorm.DB, serviceID, excludePriceListID int64) (*entity.PriceListEntry, error) {
	args := m.Called(db, serviceID, excludePriceListID)
	if v := args.Get(0); v != nil {
		return v.(*entity.PriceListEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPatientRepository struct{ mock.Mock }

func (m *mockPatientRepository) Create(db *gorm.DB, p *entity.Patient) error {
	return m.Called(db, p).Error(0)
}

func (m *mockPatientRepository) Update(db *gorm.DB, p *entity.Patient) error {
	return m.Called(db, p).Error(0)
}

func (m *mockPatientRepository) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepository) FindPage(db *gorm.DB, page entity.Pagination) ([]entity.Patient, int64, error) {
	args := m.Called(db, page)
	return args.Get(0).([]entity.Patient), args.Get(1).(int64), args.Error(2)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(db *gorm.DB, u *entity.User) error {
	return m.Called(db, u).Error(0)
}

func (m *mockUserRepository) Update(db *gorm.DB, u *entity.User) error {
	return m.Called(db, u).Error(0)
}

func (m *mockUserRepository) FindByID(db *gorm.DB, id int64) (*entity.User, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindDoctors(db *gorm.DB) ([]entity.User, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *mockUserRepository) FindDoctorsByServiceName(db *gorm.DB, name string) ([]entity.User, error) {
	args := m.Called(db, name)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *mockUserRepository) ReplaceServices(db *gorm.DB, u *entity.User, services []entity.Service) error {
	return m.Called(db, u, services).Error(0)
}

func (m *mockUserRepository) ClearServices(db *gorm.DB, u *entity.User) error {
	return m.Called(db, u).Error(0)
}

type mockInvoiceRepository struct{ mock.Mock }

func (m *mockInvoiceRepository) Create(db *gorm.DB, i *entity.Invoice) error {
	return m.Called(db, i).Error(0)
}

func (m *mockInvoiceRepository) FindByID(db *gorm.DB, id int64) (*entity.Invoice, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Invoice), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAppointmentRepository struct{ mock.Mock }

func (m *mockAppointmentRepository) CreateBatch(db *gorm.DB, appointments []entity.Appointment) error {
	return m.Called(db, appointments).Error(0)
}

func (m *mockAppointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	args := m.Called(db, patientID)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindPage(db *gorm.DB, filter entity.AppointmentFilter, page entity.Pagination) ([]entity.Appointment, int64, error) {
	args := m.Called(db, filter, page)
	return args.Get(0).([]entity.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *mockAppointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindTakenStarts(db *gorm.DB, doctorID int64, from, to time.Time) ([]time.Time, error) {
	args := m.Called(db, doctorID, from, to)
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *mockAppointmentRepository) ExistsActiveAt(db *gorm.DB, doctorID int64, at time.Time) (bool, error) {
	args := m.Called(db, doctorID, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepository) UpdateStatus(db *gorm.DB, id int64, from []entity.AppointmentStatus, to entity.AppointmentStatus, completionDate *time.Time) (int64, error) {
	args := m.Called(db, id, from, to, completionDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepository) FindCompletedBetween(db *gorm.DB, doctorID int64, from, to time.Time) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID, from, to)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

type mockMedicalRecordRepository struct{ mock.Mock }

func (m *mockMedicalRecordRepository) Create(db *gorm.DB, r *entity.MedicalRecord) error {
	return m.Called(db, r).Error(0)
}

func (m *mockMedicalRecordRepository) FindByPatientID(db *gorm.DB, patientID int64) ([]entity.MedicalRecord, error) {
	args := m.Called(db, patientID)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

type mockAuditLogRepository struct{ mock.Mock }

func (m *mockAuditLogRepository) Create(db *gorm.DB, l *entity.AuditLog) error {
	return m.Called(db, l).Error(0)
}

func (m *mockAuditLogRepository) FindPage(db *gorm.DB, page entity.Pagination) ([]entity.AuditLog, int64, error) {
	args := m.Called(db, page)
	return args.Get(0).([]entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(db, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.AuditLog), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVerificationCodeRepository struct{ mock.Mock }

func (m *mockVerificationCodeRepository) SaveIfAbsent(ctx context.Context, email, code string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, email, code, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockVerificationCodeRepository) Find(ctx context.Context, email string) (string, bool, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockVerificationCodeRepository) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// Services

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, newValue).Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue).Error(0)
}

// expectAudit accepts any audit write for the action.
func (m *mockAuditService) expectAudit(method, action string) *mock.Call {
	if method == "LogCreate" {
		return m.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, action, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	}
	return m.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, action, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) NotifyAppointment(ctx context.Context, notice service.AppointmentNotice) {
	m.Called(ctx, notice)
}

func (m *mockNotificationService) NotifyVerificationCode(ctx context.Context, email, code string) {
	m.Called(ctx, email, code)
}

// passthroughLocker runs the critical section without Redis and records the slots it was given.
type passthroughLocker struct {
	slots []service.SlotRef
	err   error
}

func (l *passthroughLocker) WithSlotLocks(ctx context.Context, slots []service.SlotRef, fn func(ctx context.Context) error) error {
	l.slots = slots
	if l.err != nil {
		return l.err
	}
	return fn(ctx)
}

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
