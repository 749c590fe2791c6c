package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_Allows(t *testing.T) {
	manager := Actor{ID: 3, Role: RoleManager, Department: "IT"}
	employee := Actor{ID: 9, Role: RoleEmployee, Department: "IT"}

	tests := []struct {
		name       string
		scope      Scope
		employeeID int64
		department string
		want       bool
	}{
		{"all sees everything", ScopeFor(ScopeAll, manager), 77, "HR", true},
		{"department sees own department", ScopeFor(ScopeDepartment, manager), 77, "IT", true},
		{"department hides other department", ScopeFor(ScopeDepartment, manager), 77, "HR", false},
		{"department hides rows without department", ScopeFor(ScopeDepartment, Actor{ID: 1}), 77, "", false},
		{"self sees own rows", ScopeFor(ScopeSelf, employee), 9, "IT", true},
		{"self hides colleagues", ScopeFor(ScopeSelf, employee), 10, "IT", false},
		{"none hides everything", ScopeFor("bogus", employee), 9, "IT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Allows(tt.employeeID, tt.department))
		})
	}
}
