package attendanceerrors

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
)

var (
	ErrAttendanceDenied = apperror.New(
		"ATTENDANCE_DENIED",
		"You are not allowed to modify attendance",
		http.StatusForbidden,
	)
	ErrAttendanceNotFound = apperror.New(
		"ATTENDANCE_NOT_FOUND",
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"Employee not found or inactive",
		http.StatusNotFound,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeValidationError,
		"Invalid time format, expected HH:MM or HH:MM:SS",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidationError,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeValidationError,
		"Worked hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidationError,
		"Invalid attendance status",
		http.StatusBadRequest,
	)
	ErrAlreadyComplete = apperror.New(
		"ATTENDANCE_ALREADY_COMPLETE",
		"Attendance for this day is already complete, use the correction route to change it",
		http.StatusBadRequest,
	)
	ErrNoCheckInToday = apperror.New(
		"NO_CHECK_IN_TODAY",
		"No check-in found for today",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeValidationError,
		"At least one of checkIn, checkOut or status is required",
		http.StatusBadRequest,
	)
	ErrCheckInRequired = apperror.New(
		apperror.CodeValidationError,
		"checkIn is required: the record has no check-in yet",
		http.StatusBadRequest,
	)
	ErrCheckOutRequired = apperror.New(
		apperror.CodeValidationError,
		"checkOut is required: the record is already checked in",
		http.StatusBadRequest,
	)
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance id",
		http.StatusBadRequest,
	)
)
