package export

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatZIP  = "zip"
)

type AttendanceExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx pdf zip"`
	attendance.AttendanceFilter
}

// File is a generated export ready to be streamed.
type File struct {
	FileName    string
	ContentType string
	Content     []byte
}

var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatZIP:  "application/zip",
}

var header = []string{
	"Date", "Employee Code", "Employee Name", "Department",
	"Check In", "Check Out", "Hours Worked", "Status", "Method",
}

// record flattens one attendance row into the export columns.
func record(a attendance.AttendanceResponse) []string {
	checkIn, checkOut, hours := "", "", ""
	if a.CheckIn != nil {
		checkIn = a.CheckIn.HHMM()
	}
	if a.CheckOut != nil {
		checkOut = a.CheckOut.HHMM()
	}
	if a.HoursWorked != nil {
		hours = formatHours(*a.HoursWorked)
	}
	return []string{
		string(a.Date), a.EmployeeCode, a.EmployeeName, a.Department,
		checkIn, checkOut, hours, a.Status, a.VerificationMethod,
	}
}
