package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueConstraintErrors = map[string]error{
	"uq_employees_email":       employeeerrors.ErrEmailAlreadyExists,
	"uq_employees_cin":         employeeerrors.ErrCINAlreadyExists,
	"uq_employees_cnss":        employeeerrors.ErrCNSSAlreadyExists,
	"uq_employees_employee_id": employeeerrors.ErrEmployeeCodeConflict,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		for constraint, mapped := range uniqueConstraintErrors {
			if strings.Contains(errMsg, constraint) {
				return mapped
			}
		}
	}

	return err
}
