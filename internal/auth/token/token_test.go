package token

import (
	"testing"
	"time"

	autherrors "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	actor := domain.Actor{ID: 7, EmployeeCode: "EMP007", Role: domain.RoleManager, Department: "IT"}

	signed, err := m.Issue(actor, TypeAccess)
	require.NoError(t, err)

	got, err := m.Parse(signed, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestManager_RejectsWrongType(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	signed, err := m.Issue(domain.Actor{ID: 1, Role: domain.RoleAdmin}, TypeRefresh)
	require.NoError(t, err)

	_, err = m.Parse(signed, TypeAccess)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, err := m.Issue(domain.Actor{ID: 1, Role: domain.RoleAdmin}, TypeAccess)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(signed, TypeAccess)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	signed, err := NewManager("a", time.Hour, time.Hour).Issue(domain.Actor{ID: 1}, TypeAccess)
	require.NoError(t, err)

	_, err = NewManager("b", time.Hour, time.Hour).Parse(signed, TypeAccess)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
