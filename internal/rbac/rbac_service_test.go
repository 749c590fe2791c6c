package rbac

import (
	"testing"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(ModelText, DefaultPolicies())
	require.NoError(t, err)
	return NewService(enforcer)
}

func TestRBACService_AttendanceWritesAdminOnly(t *testing.T) {
	svc := newTestService(t)

	for _, action := range []string{ActionCreate, ActionUpdate, ActionDelete} {
		for _, role := range []string{domain.RoleManager, domain.RoleEmployee} {
			d, err := svc.Authorize(EnforceRequest{Role: role, Resource: ResourceAttendance, Action: action})
			require.NoError(t, err)
			assert.False(t, d.Allowed, "%s must not %s attendance", role, action)
			assert.Equal(t, domain.ScopeNone, d.Scope)
		}

		d, err := svc.Authorize(EnforceRequest{Role: domain.RoleAdmin, Resource: ResourceAttendance, Action: action})
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, domain.ScopeAll, d.Scope)
	}
}

func TestRBACService_ReadScopes(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role  string
		scope string
	}{
		{domain.RoleAdmin, domain.ScopeAll},
		{domain.RoleManager, domain.ScopeDepartment},
		{domain.RoleEmployee, domain.ScopeSelf},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			d, err := svc.Authorize(EnforceRequest{Role: tt.role, Resource: ResourceAttendance, Action: ActionRead})
			require.NoError(t, err)
			assert.True(t, d.Allowed)
			assert.Equal(t, tt.scope, d.Scope)
		})
	}
}

func TestRBACService_StatsAdminOnly(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(EnforceRequest{Role: domain.RoleManager, Resource: ResourceAttendanceStats, Action: ActionRead})
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(EnforceRequest{Role: "ADMIN", Resource: ResourceAttendanceStats, Action: ActionRead})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_UnknownRoleDenied(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.Authorize(EnforceRequest{Role: "intern", Resource: ResourceAttendance, Action: ActionRead})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestRBACService_ManagerCreatesEmployeesInDepartment(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.Authorize(EnforceRequest{Role: domain.RoleManager, Resource: ResourceEmployee, Action: ActionCreate})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, domain.ScopeDepartment, d.Scope)

	d, err = svc.Authorize(EnforceRequest{Role: domain.RoleManager, Resource: ResourceEmployee, Action: ActionPurge})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}
