package rbac

import (
	"strings"
	"sync"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Authorize(req EnforceRequest) (Decision, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	d, err := s.Authorize(req)
	return d.Allowed, err
}

// Authorize evaluates the policy once and returns the decision with the row
// scope of the matching rule. Unknown roles are denied without error.
func (s *service) Authorize(req EnforceRequest) (Decision, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !domain.IsKnownRole(role) {
		s.logger.Debug("rbac deny unknown role", zap.String("role", req.Role))
		return Decision{Scope: domain.ScopeNone}, nil
	}

	s.mu.RLock()
	allowed, explain, err := s.enforcer.EnforceEx(role, req.Resource, req.Action)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return Decision{}, err
	}

	d := Decision{Allowed: allowed, Scope: domain.ScopeNone}
	if allowed && len(explain) >= 4 {
		d.Scope = explain[3]
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", d.Allowed),
		zap.String("scope", d.Scope),
	)
	return d, nil
}
