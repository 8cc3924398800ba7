package usecase

import (
	"context"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/pkg/apperror"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errNoActor = apperror.Unauthorized("user not found in context")

// UserUsecase manages staff accounts. Passwords are hashed here for the external auth service,
// which issues the tokens this server validates.
type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	ChangeUserType(ctx context.Context, id int64, req *dto.ChangeUserTypeRequest) (*dto.UserResponse, error)
	AssignServices(ctx context.Context, doctorID int64, req *dto.AssignServicesRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	userType := entity.UserType(req.UserType)
	if !userType.IsValid() {
		return nil, ErrInvalidType
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		MiddleName:    strings.TrimSpace(req.MiddleName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hashedPassword),
		UserType:      userType,
		Qualification: strings.TrimSpace(req.Qualification),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(tx, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		if isDuplicateKeyError(err, "") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionUserCreate, "user", user.ID, map[string]interface{}{
		"email":     user.Email,
		"user_type": user.UserType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID := actorID(ctx)
	if userID == nil {
		return nil, errNoActor
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), *userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.userRepo.FindDoctors(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

// ChangeUserType switches a user's type. Leaving DOCTOR drops every service association.
func (u *userUsecase) ChangeUserType(ctx context.Context, id int64, req *dto.ChangeUserTypeRequest) (*dto.UserResponse, error) {
	newType := entity.UserType(req.UserType)
	if !newType.IsValid() {
		return nil, ErrInvalidType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.UserType == newType {
		return converter.UserToResponse(user), nil
	}
	previous := user.UserType

	if newType != entity.UserTypeDoctor && len(user.Services) > 0 {
		if err := u.userRepo.ClearServices(tx, user); err != nil {
			u.log.Warnf("Failed to clear services of user %d: %+v", id, err)
			return nil, err
		}
		user.Services = nil
	}

	user.UserType = newType
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionUserTypeChange, "user", user.ID,
		map[string]interface{}{"user_type": previous},
		map[string]interface{}{"user_type": newType},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// AssignServices replaces the set of services a doctor performs.
func (u *userUsecase) AssignServices(ctx context.Context, doctorID int64, req *dto.AssignServicesRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsDoctor() {
		return nil, ErrNotADoctor
	}

	ids := make([]int64, 0, len(req.ServiceIDs))
	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	services, err := u.serviceRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, ErrServiceNotFound
	}

	previous := make([]int64, len(user.Services))
	for i, s := range user.Services {
		previous[i] = s.ID
	}

	if err := u.userRepo.ReplaceServices(tx, user, services); err != nil {
		u.log.Warnf("Failed to assign services to user %d: %+v", doctorID, err)
		return nil, err
	}
	user.Services = services

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionUserServicesAssign, "user", user.ID,
		map[string]interface{}{"service_ids": previous},
		map[string]interface{}{"service_ids": ids},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
