package notificationerrors

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		http.StatusNotFound,
	)
	ErrInvalidUser = apperror.New(
		apperror.CodeInvalidInput,
		"A valid user id is required",
		http.StatusBadRequest,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification id",
		http.StatusBadRequest,
	)
)
