package employeeerrors

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAccessDenied = apperror.New(
		"EMPLOYEE_DENIED",
		"You are not allowed to access this employee",
		http.StatusForbidden,
	)
	ErrEmailAlreadyExists = apperror.New(
		"EMAIL_ALREADY_EXISTS",
		"An employee with this email already exists",
		http.StatusConflict,
	)
	ErrCINAlreadyExists = apperror.New(
		"CIN_ALREADY_EXISTS",
		"An employee with this CIN already exists",
		http.StatusConflict,
	)
	ErrCNSSAlreadyExists = apperror.New(
		"CNSS_ALREADY_EXISTS",
		"An employee with this CNSS number already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeConflict = apperror.New(
		"EMPLOYEE_CODE_CONFLICT",
		"Employee code was taken concurrently, please retry",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrManagerRoleRestricted = apperror.New(
		"EMPLOYEE_DENIED",
		"Managers can only create employees with the employee role in their own department",
		http.StatusForbidden,
	)
	ErrEmptyUpdate = apperror.New(
		apperror.CodeValidationError,
		"At least one field must be provided",
		http.StatusBadRequest,
	)
	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeInvalidState,
		"You cannot permanently delete your own account",
		http.StatusBadRequest,
	)
	ErrInvalidConfirmationToken = apperror.New(
		"INVALID_CONFIRMATION_TOKEN",
		"The confirmation token is invalid or has expired",
		http.StatusBadRequest,
	)
	ErrHardDeleteUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Permanent deletion is unavailable",
		http.StatusServiceUnavailable,
	)
)
