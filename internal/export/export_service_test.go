package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	exporterrors "github.com/elec-connect/smart-attendance-system-sub001/internal/export/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeLister struct {
	rows      []attendance.AttendanceResponse
	err       error
	gotScope  domain.Scope
	gotFilter attendance.AttendanceFilter
}

func (f *fakeLister) GetAllAttendance(_ context.Context, scope domain.Scope, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	f.gotScope = scope
	f.gotFilter = filter
	return f.rows, f.err
}

func sampleRows() []attendance.AttendanceResponse {
	in := attendance.ClockTime(8 * 3600)
	out := attendance.ClockTime(16*3600 + 30*60)
	hours := 8.5
	return []attendance.AttendanceResponse{
		{
			ID: 1, EmployeeID: 1, EmployeeCode: "EMP001", EmployeeName: "Sara Amrani", Department: "IT",
			Date: "2026-03-02", CheckIn: &in, CheckOut: &out, HoursWorked: &hours,
			Status: attendance.StatusCheckedOut, VerificationMethod: attendance.MethodManual,
		},
		{
			ID: 2, EmployeeID: 2, EmployeeCode: "EMP002", EmployeeName: "Omar Idrissi", Department: "Sales",
			Date: "2026-03-02", CheckIn: &in, Status: attendance.StatusPresent, VerificationMethod: attendance.MethodFacial,
		},
	}
}

func newTestService(l AttendanceLister) *service {
	svc := NewService(l, "Smart Attendance").(*service)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportAttendance_CSV(t *testing.T) {
	lister := &fakeLister{rows: sampleRows()}
	svc := newTestService(lister)
	scope := domain.Scope{Kind: domain.ScopeDepartment, Department: "IT"}

	file, err := svc.ExportAttendance(context.Background(), scope, attendance.AttendanceFilter{Date: "2026-03-02"}, "")
	require.NoError(t, err)

	assert.Equal(t, "attendance_20260302_180000.csv", file.FileName)
	assert.Equal(t, scope, lister.gotScope)
	assert.Equal(t, maxExportRows, lister.gotFilter.Limit)
	assert.Equal(t, "2026-03-02", lister.gotFilter.Date)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(file.Content, []byte("\ufeff")))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"2026-03-02", "EMP001", "Sara Amrani", "IT", "08:00", "16:30", "8.50", "checked_out", "manual"}, records[1])
	assert.Equal(t, "", records[2][5])
}

func TestExportAttendance_XLSX(t *testing.T) {
	svc := newTestService(&fakeLister{rows: sampleRows()})

	file, err := svc.ExportAttendance(context.Background(), domain.Scope{Kind: domain.ScopeAll}, attendance.AttendanceFilter{}, "xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Smart Attendance - Attendance report", title)

	code, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", code)

	hours, err := f.GetCellValue(sheetName, "G4")
	require.NoError(t, err)
	assert.Equal(t, "8.5", hours)
}

func TestExportAttendance_PDFAndZIP(t *testing.T) {
	svc := newTestService(&fakeLister{rows: sampleRows()})
	ctx := context.Background()
	all := domain.Scope{Kind: domain.ScopeAll}

	pdf, err := svc.ExportAttendance(ctx, all, attendance.AttendanceFilter{}, "PDF")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", pdf.ContentType)

	bundle, err := svc.ExportAttendance(ctx, all, attendance.AttendanceFilter{}, "zip")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(bundle.Content), int64(len(bundle.Content)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if strings.HasSuffix(f.Name, ".csv") {
			rc, err := f.Open()
			require.NoError(t, err)
			body, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			assert.Contains(t, string(body), "EMP002")
		}
	}
	assert.Equal(t, []string{
		"attendance_20260302_180000.csv",
		"attendance_20260302_180000.xlsx",
		"attendance_20260302_180000.pdf",
	}, names)
}

func TestExportAttendance_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported format", func(t *testing.T) {
		_, err := newTestService(&fakeLister{}).ExportAttendance(ctx, domain.Scope{Kind: domain.ScopeAll}, attendance.AttendanceFilter{}, "docx")
		assert.ErrorIs(t, err, exporterrors.ErrUnsupportedFormat)
	})

	t.Run("listing failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := newTestService(&fakeLister{err: boom}).ExportAttendance(ctx, domain.Scope{Kind: domain.ScopeAll}, attendance.AttendanceFilter{}, "csv")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty listing still exports a header", func(t *testing.T) {
		file, err := newTestService(&fakeLister{}).ExportAttendance(ctx, domain.Scope{Kind: domain.ScopeNone}, attendance.AttendanceFilter{}, "csv")
		require.NoError(t, err)
		assert.Contains(t, string(file.Content), "Employee Code")
	})
}
