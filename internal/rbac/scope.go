package rbac

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"gorm.io/gorm"
)

// ScopeFilter restricts a query to the rows visible under s. employeeCol and
// departmentCol name the columns holding the owning employee id and department.
func ScopeFilter(s domain.Scope, employeeCol, departmentCol string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch s.Kind {
		case domain.ScopeAll:
			return db
		case domain.ScopeDepartment:
			return db.Where(departmentCol+" = ?", s.Department)
		case domain.ScopeSelf:
			return db.Where(employeeCol+" = ?", s.EmployeeID)
		default:
			return db.Where("1 = 0")
		}
	}
}
