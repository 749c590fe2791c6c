package exporterrors

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
)

var (
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported export format, expected csv, xlsx, pdf or zip",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		"EXPORT_FAILED",
		"Could not generate the export file",
		http.StatusInternalServerError,
	)
)
