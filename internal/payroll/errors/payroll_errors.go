package payrollerrors

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
)

var (
	ErrPayrollDenied = apperror.New(
		"PAYROLL_DENIED",
		"You are not allowed to access this payroll record",
		http.StatusForbidden,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"Employee not found",
		http.StatusNotFound,
	)
	ErrSalaryConfigNotFound = apperror.New(
		"SALARY_CONFIG_NOT_FOUND",
		"No salary configuration for this employee",
		http.StatusNotFound,
	)
	ErrPaymentNotFound = apperror.New(
		"PAYMENT_NOT_FOUND",
		"Salary payment not found",
		http.StatusNotFound,
	)
	ErrPaymentAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Salary payment is already paid",
		http.StatusConflict,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment id",
		http.StatusBadRequest,
	)
)
