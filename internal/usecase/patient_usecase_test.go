package usecase

import (
	"context"
	"testing"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPatientUsecase(t *testing.T) (PatientUsecase, *mockPatientRepository, *mockAuditService, sqlmock.Sqlmock) {
	db, sqlMock := newMockDB(t)
	patients := new(mockPatientRepository)
	audit := new(mockAuditService)
	return NewPatientUsecase(db, quietLogger(), patients, audit), patients, audit, sqlMock
}

func patientRequest() *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		FirstName:   "Ivan",
		LastName:    "Petrov",
		PhoneNumber: "+380501112233",
		Email:       " Ivan@Example.com ",
		BirthDate:   "1980-04-02",
		Gender:      "male",
	}
}

func TestCreatePatient(t *testing.T) {
	uc, patients, audit, sqlMock := newPatientUsecase(t)
	sqlMock.ExpectBegin()
	patients.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Patient) bool {
		return p.Email == "ivan@example.com" && p.BenefitGroup == entity.BenefitGroupNone
	})).Run(func(args mock.Arguments) { args.Get(1).(*entity.Patient).ID = 4 }).Return(nil)
	audit.expectAudit("LogCreate", entity.AuditActionPatientCreate)
	sqlMock.ExpectCommit()

	res, err := uc.CreatePatient(context.Background(), patientRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.ID)
	assert.Equal(t, "1980-04-02", res.BirthDate)
	assert.Equal(t, "Petrov Ivan", res.FullName)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreatePatient_Duplicate(t *testing.T) {
	uc, patients, _, sqlMock := newPatientUsecase(t)
	sqlMock.ExpectBegin()
	patients.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505", ConstraintName: "ux_patients_phone_number"})
	sqlMock.ExpectRollback()

	_, err := uc.CreatePatient(context.Background(), patientRequest())

	assert.ErrorIs(t, err, ErrPatientExists)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUpdatePatient(t *testing.T) {
	t.Run("changes benefit group", func(t *testing.T) {
		uc, patients, audit, sqlMock := newPatientUsecase(t)
		sqlMock.ExpectBegin()
		patients.On("FindByID", mock.Anything, int64(4)).Return(&entity.Patient{ID: 4, FirstName: "Ivan"}, nil)
		patients.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Patient) bool {
			return p.BenefitGroup == entity.BenefitGroupElderly
		})).Return(nil)
		audit.expectAudit("LogUpdate", entity.AuditActionPatientUpdate)
		sqlMock.ExpectCommit()

		req := patientRequest()
		req.BenefitGroup = "elderly"
		res, err := uc.UpdatePatient(context.Background(), 4, req)

		require.NoError(t, err)
		assert.Equal(t, "elderly", res.BenefitGroup)
	})

	t.Run("unknown patient", func(t *testing.T) {
		uc, patients, _, sqlMock := newPatientUsecase(t)
		sqlMock.ExpectBegin()
		patients.On("FindByID", mock.Anything, int64(4)).Return(nil, nil)
		sqlMock.ExpectRollback()

		_, err := uc.UpdatePatient(context.Background(), 4, patientRequest())

		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestGetPatient_NotFound(t *testing.T) {
	uc, patients, _, _ := newPatientUsecase(t)
	patients.On("FindByID", mock.Anything, int64(4)).Return(nil, nil)

	_, err := uc.GetPatient(context.Background(), 4)

	assert.ErrorIs(t, err, ErrPatientNotFound)
}
