package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	employeeerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/employee/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey    = "employees:options:all"
	HardDeleteTokenPrefix = "employees:purge:"
	HardDeleteTokenTTL    = 5 * time.Minute
	employeeOptionsTTL    = time.Hour
	dateLayout            = "2006-01-02"
)

func HardDeleteTokenKey(token string) string {
	return HardDeleteTokenPrefix + token
}

// DefaultPassword is the initial password handed out when none is supplied.
func DefaultPassword(firstName string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + "@123"
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context, scope domain.Scope, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, scope domain.Scope) ([]EmployeeOption, error)
	GetByID(ctx context.Context, scope domain.Scope, id string) (EmployeeResponse, error)
	Update(ctx context.Context, scope domain.Scope, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actor domain.Actor, scope domain.Scope, id string) error
	RequestHardDelete(ctx context.Context, actor domain.Actor, id string) (HardDeleteConfirmation, error)
	ConfirmHardDelete(ctx context.Context, actor domain.Actor, id, token string) (HardDeleteResult, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actor domain.Actor,
	req CreateEmployeeRequest,
) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.Int64("actor_id", actor.ID),
		zap.String("email", req.Email),
	)

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	department := strings.TrimSpace(req.Department)

	if !actor.IsAdmin() {
		if role != domain.RoleEmployee {
			return CreateEmployeeResponse{}, employeeerrors.ErrManagerRoleRestricted
		}
		if department == "" {
			department = actor.Department
		}
		if department != actor.Department {
			return CreateEmployeeResponse{}, employeeerrors.ErrManagerRoleRestricted
		}
	}

	hireDate, err := parseOptionalDate(req.HireDate)
	if err != nil {
		return CreateEmployeeResponse{}, apperror.InvalidField("hireDate")
	}

	password := req.Password
	defaultPassword := ""
	if password == "" {
		password = DefaultPassword(req.FirstName)
		defaultPassword = password
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	defer tx.Rollback()

	nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeCode)
	if err != nil {
		s.logger.Error("create employee generate code failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	empl := &Employee{
		EmployeeCode: counter.FormatEmployeeCode(nextVal),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		CIN:          optionalString(req.CIN),
		CNSSNumber:   optionalString(req.CNSSNumber),
		Phone:        req.Phone,
		Department:   department,
		Position:     req.Position,
		Role:         role,
		IsActive:     true,
		Status:       StatusActive,
		PasswordHash: string(hash),
		HireDate:     hireDate,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return CreateEmployeeResponse{
		EmployeeResponse: mapToResponse(*empl),
		DefaultPassword:  defaultPassword,
	}, nil
}

func (s *service) GetAll(
	ctx context.Context,
	scope domain.Scope,
	filter EmployeeFilter,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("scope", scope.Kind))
	empls, err := s.repo.FindAll(ctx, scope, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// GetOptions serves the active employee picker list. The full list is cached
// once and narrowed to the caller's scope on every read.
func (s *service) GetOptions(ctx context.Context, scope domain.Scope) ([]EmployeeOption, error) {
	all, err := s.loadOptions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EmployeeOption, 0, len(all))
	for _, o := range all {
		if scope.Allows(o.ID, o.Department) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *service) loadOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx, domain.Scope{Kind: domain.ScopeAll})
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, 0, len(empls))
		for _, e := range empls {
			resp = append(resp, EmployeeOption{
				ID:         e.ID,
				EmployeeID: e.EmployeeCode,
				FullName:   e.FullName(),
				Department: e.Department,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(
	ctx context.Context,
	scope domain.Scope,
	id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	empl, err := s.findInScope(ctx, s.repo, scope, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	scope domain.Scope,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if req.isEmpty() {
		return EmployeeResponse{}, employeeerrors.ErrEmptyUpdate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := s.findInScope(ctx, qtx, scope, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := applyUpdate(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.Int64("employee_id", empl.ID))

	return mapToResponse(*empl), nil
}

func (s *service) Deactivate(
	ctx context.Context,
	actor domain.Actor,
	scope domain.Scope,
	id string,
) error {
	s.logger.Debug("deactivate employee requested", zap.String("employee_id", id))

	empl, err := s.findInScope(ctx, s.repo, scope, id)
	if err != nil {
		return err
	}
	if empl.ID == actor.ID {
		return employeeerrors.ErrCannotDeleteSelf
	}

	if err := s.repo.Deactivate(ctx, empl.ID); err != nil {
		s.logger.Error("deactivate employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("deactivate employee success", zap.Int64("employee_id", empl.ID))
	return nil
}

// RequestHardDelete is step one of a permanent delete: it reports what would
// be removed and issues a short-lived confirmation token.
func (s *service) RequestHardDelete(
	ctx context.Context,
	actor domain.Actor,
	id string,
) (HardDeleteConfirmation, error) {
	if s.rdb == nil {
		return HardDeleteConfirmation{}, employeeerrors.ErrHardDeleteUnavailable
	}

	empl, err := s.findInScope(ctx, s.repo, domain.Scope{Kind: domain.ScopeAll}, id)
	if err != nil {
		return HardDeleteConfirmation{}, err
	}
	if empl.ID == actor.ID {
		return HardDeleteConfirmation{}, employeeerrors.ErrCannotDeleteSelf
	}

	counts, err := s.repo.CountDependents(ctx, empl.ID)
	if err != nil {
		s.logger.Error("count employee dependents failed", zap.Error(err))
		return HardDeleteConfirmation{}, err
	}

	token := uuid.NewString()
	idStr := strconv.FormatInt(empl.ID, 10)
	if err := s.rdb.Set(ctx, HardDeleteTokenKey(token), idStr, HardDeleteTokenTTL).Err(); err != nil {
		s.logger.Error("store hard delete token failed", zap.Error(err))
		return HardDeleteConfirmation{}, employeeerrors.ErrHardDeleteUnavailable.WithCause(err)
	}

	s.logger.Warn("hard delete requested",
		zap.Int64("employee_id", empl.ID),
		zap.Int64("requested_by", actor.ID),
	)

	return HardDeleteConfirmation{
		EmployeeID:        empl.ID,
		FullName:          empl.FullName(),
		ConfirmationToken: token,
		ExpiresInSeconds:  int(HardDeleteTokenTTL / time.Second),
		WillDelete:        counts,
	}, nil
}

// ConfirmHardDelete consumes the token and removes the employee with every
// dependent row in one transaction.
func (s *service) ConfirmHardDelete(
	ctx context.Context,
	actor domain.Actor,
	id, token string,
) (HardDeleteResult, error) {
	if s.rdb == nil {
		return HardDeleteResult{}, employeeerrors.ErrHardDeleteUnavailable
	}

	empl, err := s.findInScope(ctx, s.repo, domain.Scope{Kind: domain.ScopeAll}, id)
	if err != nil {
		return HardDeleteResult{}, err
	}
	if empl.ID == actor.ID {
		return HardDeleteResult{}, employeeerrors.ErrCannotDeleteSelf
	}

	stored, err := s.rdb.GetDel(ctx, HardDeleteTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return HardDeleteResult{}, employeeerrors.ErrInvalidConfirmationToken
		}
		s.logger.Error("read hard delete token failed", zap.Error(err))
		return HardDeleteResult{}, employeeerrors.ErrHardDeleteUnavailable.WithCause(err)
	}
	if stored != strconv.FormatInt(empl.ID, 10) {
		return HardDeleteResult{}, employeeerrors.ErrInvalidConfirmationToken
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hard delete begin tx failed", zap.Error(err))
		return HardDeleteResult{}, err
	}
	defer tx.Rollback()

	counts, err := s.repo.WithTx(tx).Purge(ctx, empl.ID)
	if err != nil {
		s.logger.Error("hard delete failed, rolled back",
			zap.Int64("employee_id", empl.ID),
			zap.Error(err),
		)
		return HardDeleteResult{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("hard delete commit failed", zap.Error(err))
		return HardDeleteResult{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Warn("employee permanently deleted",
		zap.Int64("employee_id", empl.ID),
		zap.String("employee_code", empl.EmployeeCode),
		zap.Int64("deleted_by", actor.ID),
	)

	return HardDeleteResult{EmployeeID: empl.ID, Deleted: counts}, nil
}

func (s *service) findInScope(ctx context.Context, repo Repository, scope domain.Scope, id string) (*Employee, error) {
	empl, err := repo.FindByRef(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !scope.Allows(empl.ID, empl.Department) {
		return nil, employeeerrors.ErrEmployeeAccessDenied
	}
	return empl, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func (r UpdateEmployeeRequest) isEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.CIN == nil && r.CNSSNumber == nil && r.Phone == nil &&
		r.Department == nil && r.Position == nil && r.Role == nil &&
		r.HireDate == nil && r.FaceRegistered == nil
}

func applyUpdate(empl *Employee, req UpdateEmployeeRequest) error {
	if req.FirstName != nil {
		empl.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		empl.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		empl.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.CIN != nil {
		empl.CIN = optionalString(*req.CIN)
	}
	if req.CNSSNumber != nil {
		empl.CNSSNumber = optionalString(*req.CNSSNumber)
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Department != nil {
		empl.Department = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		empl.Position = *req.Position
	}
	if req.Role != nil {
		empl.Role = *req.Role
	}
	if req.FaceRegistered != nil {
		empl.FaceRegistered = *req.FaceRegistered
	}
	if req.HireDate != nil {
		hireDate, err := parseOptionalDate(*req.HireDate)
		if err != nil {
			return apperror.InvalidField("hireDate")
		}
		empl.HireDate = hireDate
	}
	return nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID,
		EmployeeID:     empl.EmployeeCode,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		FullName:       empl.FullName(),
		Email:          empl.Email,
		CIN:            empl.CIN,
		CNSSNumber:     empl.CNSSNumber,
		Phone:          empl.Phone,
		Department:     empl.Department,
		Position:       empl.Position,
		Role:           empl.Role,
		IsActive:       empl.IsActive,
		Status:         empl.Status,
		FaceRegistered: empl.FaceRegistered,
	}
	if empl.HireDate != nil {
		resp.HireDate = empl.HireDate.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		res = append(res, mapToResponse(e))
	}
	return res
}
