package payroll

import (
	"strings"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

// ValidateSalaryConfig collects every violation instead of stopping at the first.
func ValidateSalaryConfig(req SalaryConfigRequest) error {
	var violations []string

	if strings.TrimSpace(string(req.EmployeeID)) == "" {
		violations = append(violations, "employee_id is required")
	}

	switch {
	case req.BaseSalary == nil:
		violations = append(violations, "base_salary is required")
	case !req.BaseSalary.IsPositive():
		violations = append(violations, "base_salary must be greater than 0")
	}

	violations = appendPercent(violations, "tax_rate", req.TaxRate)
	violations = appendPercent(violations, "social_security_rate", req.SocialSecurityRate)
	violations = appendPercent(violations, "bonus_variable", req.BonusVariable)
	violations = appendNonNegative(violations, "bonus_fixed", req.BonusFixed)
	violations = appendNonNegative(violations, "other_deductions", req.OtherDeductions)

	if len(req.Currency) > 0 && len(strings.TrimSpace(req.Currency)) != 3 {
		violations = append(violations, "currency must be a 3-letter code")
	}

	if len(violations) == 0 {
		return nil
	}
	return apperror.Validation(apperror.CodeValidationError + ": " + strings.Join(violations, "; "))
}

func appendPercent(violations []string, field string, v *decimal.Decimal) []string {
	if v == nil {
		return violations
	}
	if v.IsNegative() || v.GreaterThan(hundred) {
		return append(violations, field+" must be between 0 and 100")
	}
	return violations
}

func appendNonNegative(violations []string, field string, v *decimal.Decimal) []string {
	if v != nil && v.IsNegative() {
		return append(violations, field+" must not be negative")
	}
	return violations
}
