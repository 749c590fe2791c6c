package auth

import (
	"context"
	"errors"

	autherrors "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/auth/token"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Me(ctx context.Context, userID int64) (AuthResponse, error)
}

type service struct {
	employees employee.Repository
	tokens    *token.Manager
	logger    *zap.Logger
}

func NewService(employees employee.Repository, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
		}
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.Int64("employee_id", empl.ID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !empl.IsActive {
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	resp, err := s.issue(*empl)
	if err != nil {
		return LoginResponse{}, err
	}
	s.logger.Info("login success", zap.Int64("employee_id", empl.ID), zap.String("role", empl.Role))
	return resp, nil
}

// Refresh reloads the employee so role or department changes and
// deactivation take effect on the next rotation.
func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	actor, err := s.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}

	empl, err := s.employees.FindByID(ctx, actor.ID)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !empl.IsActive {
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	return s.issue(*empl)
}

func (s *service) Me(ctx context.Context, userID int64) (AuthResponse, error) {
	empl, err := s.employees.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return toAuthResponse(*empl), nil
}

func (s *service) issue(empl employee.Employee) (LoginResponse, error) {
	actor := domain.Actor{
		ID:           empl.ID,
		EmployeeCode: empl.EmployeeCode,
		Role:         empl.Role,
		Department:   empl.Department,
	}

	access, err := s.tokens.Issue(actor, token.TypeAccess)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.tokens.Issue(actor, token.TypeRefresh)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		User: toAuthResponse(empl),
		TokenPair: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		},
	}, nil
}

func toAuthResponse(empl employee.Employee) AuthResponse {
	return AuthResponse{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeCode,
		Email:      empl.Email,
		Name:       empl.FullName(),
		Role:       empl.Role,
		Department: empl.Department,
	}
}
