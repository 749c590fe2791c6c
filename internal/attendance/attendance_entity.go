package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusCheckedOut = "checked_out"
	StatusNotChecked = "not_checked"
	StatusAbsent     = "absent"
)

const (
	MethodManual           = "manual"
	MethodFacial           = "facial_recognition"
	MethodManualCorrection = "manual_correction"
)

// Check types accepted by MarkAttendance.
const (
	CheckTypeManual   = "manual"
	CheckTypeFacial   = "facial"
	CheckTypeCheckIn  = "check_in"
	CheckTypeCheckOut = "check_out"
)

func validStatus(s string) bool {
	switch s {
	case StatusPresent, StatusLate, StatusCheckedOut, StatusNotChecked, StatusAbsent:
		return true
	}
	return false
}

type Attendance struct {
	ID                 int64               `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID         int64               `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date"`
	RecordDate         Date                `gorm:"column:record_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckInTime        *ClockTime          `gorm:"column:check_in_time;type:time"`
	CheckOutTime       *ClockTime          `gorm:"column:check_out_time;type:time"`
	HoursWorked        decimal.NullDecimal `gorm:"column:hours_worked;type:numeric(5,2)"`
	Status             string              `gorm:"column:status;type:varchar(20);not null"`
	VerificationMethod string              `gorm:"column:verification_method;type:varchar(30);not null;default:manual"`
	Notes              *string             `gorm:"column:notes;type:text"`
	ShiftName          *string             `gorm:"column:shift_name;type:varchar(50)"`
	CreatedAt          time.Time           `gorm:"column:created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) hasCheckIn() bool  { return a.CheckInTime != nil }
func (a *Attendance) hasCheckOut() bool { return a.CheckOutTime != nil }

func (a *Attendance) setHours(h float64) {
	a.HoursWorked = decimal.NewNullDecimal(decimal.NewFromFloat(h).Round(2))
}

// AttendanceRow is an attendance record joined with its employee.
type AttendanceRow struct {
	Attendance   `gorm:"embedded"`
	EmployeeCode string `gorm:"column:employee_code"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Department   string `gorm:"column:department"`
}

type Correction struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	AttendanceID int64      `gorm:"column:attendance_id;not null;index"`
	EmployeeID   int64      `gorm:"column:employee_id;not null"`
	CorrectedBy  int64      `gorm:"column:corrected_by;not null"`
	OldCheckIn   *ClockTime `gorm:"column:old_check_in;type:time"`
	OldCheckOut  *ClockTime `gorm:"column:old_check_out;type:time"`
	OldStatus    string     `gorm:"column:old_status;type:varchar(20)"`
	NewCheckIn   *ClockTime `gorm:"column:new_check_in;type:time"`
	NewCheckOut  *ClockTime `gorm:"column:new_check_out;type:time"`
	NewStatus    string     `gorm:"column:new_status;type:varchar(20)"`
	Reason       string     `gorm:"column:reason;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (Correction) TableName() string {
	return "attendance_corrections"
}

// DailyCounts are the raw aggregates behind the stats endpoint.
type DailyCounts struct {
	TotalEmployees int64 `gorm:"column:total_employees"`
	Present        int64 `gorm:"column:present"`
	CheckedOut     int64 `gorm:"column:checked_out"`
	Late           int64 `gorm:"column:late"`
}
