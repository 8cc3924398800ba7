package usecase

import (
	"context"
	"testing"

	"clinic-backoffice/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListAuditLogs(t *testing.T) {
	db, _ := newMockDB(t)
	logs := new(mockAuditLogRepository)
	userID := int64(3)
	logs.On("FindPage", mock.Anything, entity.Pagination{Page: 1, PerPage: 10}).Return([]entity.AuditLog{
		{ID: 1, UserID: &userID, User: &entity.User{ID: 3, FirstName: "Olga", LastName: "Koval"}, Action: entity.AuditActionPriceListActivate},
	}, int64(1), nil)
	uc := NewAuditLogUsecase(db, quietLogger(), logs)

	res, total, err := uc.ListAuditLogs(context.Background(), entity.NewPagination(0, 0))

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, res, 1)
	assert.Equal(t, "Koval Olga", res[0].User.Name)
}

func TestGetAuditLog_NotFound(t *testing.T) {
	db, _ := newMockDB(t)
	logs := new(mockAuditLogRepository)
	logs.On("FindByID", mock.Anything, int64(9)).Return(nil, nil)
	uc := NewAuditLogUsecase(db, quietLogger(), logs)

	_, err := uc.GetAuditLog(context.Background(), 9)

	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
