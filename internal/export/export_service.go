package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	exporterrors "github.com/elec-connect/smart-attendance-system-sub001/internal/export/errors"

	"go.uber.org/zap"
)

// maxExportRows bounds a single export when the caller gives no limit.
const maxExportRows = 1000

// AttendanceLister is the scope-filtered attendance listing.
type AttendanceLister interface {
	GetAllAttendance(ctx context.Context, scope domain.Scope, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error)
}

//go:generate mockgen -source=export_service.go -destination=mock/export_service_mock.go -package=mock
type Service interface {
	ExportAttendance(ctx context.Context, scope domain.Scope, filter attendance.AttendanceFilter, format string) (File, error)
}

type service struct {
	attendance  AttendanceLister
	companyName string
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(lister AttendanceLister, companyName string, logger ...*zap.Logger) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{
		attendance:  lister,
		companyName: companyName,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) ExportAttendance(ctx context.Context, scope domain.Scope, filter attendance.AttendanceFilter, format string) (File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if _, ok := contentTypes[format]; !ok {
		return File{}, exporterrors.ErrUnsupportedFormat
	}
	if filter.Limit <= 0 {
		filter.Limit = maxExportRows
	}

	rows, err := s.attendance.GetAllAttendance(ctx, scope, filter)
	if err != nil {
		return File{}, err
	}

	now := s.now()
	base := "attendance_" + now.Format("20060102_150405")
	title := fmt.Sprintf("%s - Attendance report", s.companyName)

	content, err := s.render(format, base, title, rows, now)
	if err != nil {
		s.logger.Error("export failed",
			zap.String("format", format),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		return File{}, exporterrors.ErrExportFailed.WithCause(err)
	}

	s.logger.Info("attendance exported",
		zap.String("format", format),
		zap.String("scope", scope.Kind),
		zap.Int("rows", len(rows)),
	)
	return File{
		FileName:    base + "." + format,
		ContentType: contentTypes[format],
		Content:     content,
	}, nil
}

func (s *service) render(format, base, title string, rows []attendance.AttendanceResponse, now time.Time) ([]byte, error) {
	switch format {
	case FormatCSV:
		return writeCSV(rows)
	case FormatXLSX:
		return writeXLSX(title, rows)
	case FormatPDF:
		return writePDF(title, rows, now)
	}

	entries := make([]zipEntry, 0, 3)
	for _, f := range []string{FormatCSV, FormatXLSX, FormatPDF} {
		content, err := s.render(f, base, title, rows, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, zipEntry{name: base + "." + f, content: content})
	}
	return writeZIP(entries, now)
}
