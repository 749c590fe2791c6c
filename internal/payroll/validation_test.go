package payroll

import (
	"errors"
	"testing"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateSalaryConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		err := ValidateSalaryConfig(SalaryConfigRequest{
			EmployeeID:         "EMP001",
			BaseSalary:         decPtr("8000"),
			TaxRate:            decPtr("100"),
			SocialSecurityRate: decPtr("0"),
		})
		assert.NoError(t, err)
	})

	t.Run("collects every violation", func(t *testing.T) {
		err := ValidateSalaryConfig(SalaryConfigRequest{
			BaseSalary:    decPtr("-1"),
			TaxRate:       decPtr("100.01"),
			BonusVariable: decPtr("-5"),
		})
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidationError, appErr.Code)
		assert.Equal(t, 400, appErr.HTTPStatus)
		assert.Equal(t,
			"VALIDATION_ERROR: employee_id is required; base_salary must be greater than 0; "+
				"tax_rate must be between 0 and 100; bonus_variable must be between 0 and 100",
			appErr.Message,
		)
	})

	t.Run("missing base salary", func(t *testing.T) {
		err := ValidateSalaryConfig(SalaryConfigRequest{EmployeeID: "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_salary is required")
	})

	t.Run("zero base salary", func(t *testing.T) {
		err := ValidateSalaryConfig(SalaryConfigRequest{EmployeeID: "1", BaseSalary: decPtr("0")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_salary must be greater than 0")
	})
}
