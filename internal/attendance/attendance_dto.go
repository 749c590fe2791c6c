package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EmployeeRef is an employee primary id or EMP### code. JSON numbers and
// strings are both accepted.
type EmployeeRef string

func (r *EmployeeRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = EmployeeRef(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("employeeId must be a number or string")
	}
	*r = EmployeeRef(n.String())
	return nil
}

type MarkAttendanceRequest struct {
	EmployeeID EmployeeRef `json:"employeeId" binding:"required"`
	CheckType  string      `json:"checkType" binding:"omitempty,oneof=manual facial check_in check_out"`
	Confidence *float64    `json:"confidence" binding:"omitempty,min=0,max=1"`
	Photo      string      `json:"photo"`
	Date       string      `json:"date"`
	CheckIn    *string     `json:"checkIn"`
	CheckOut   *string     `json:"checkOut"`
	Status     string      `json:"status"`
	Notes      *string     `json:"notes"`
	ShiftName  *string     `json:"shiftName"`
}

type FullAttendanceRequest struct {
	EmployeeID EmployeeRef `json:"employeeId" binding:"required"`
	CheckIn    string      `json:"checkIn" binding:"required"`
	CheckOut   string      `json:"checkOut" binding:"required"`
	Date       string      `json:"date" binding:"required"`
	CheckType  string      `json:"checkType"`
	Notes      *string     `json:"notes"`
	ShiftName  *string     `json:"shiftName"`
	Status     string      `json:"status"`
}

type UpdateAttendanceRequest struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Status   *string `json:"status"`
	Reason   string  `json:"reason"`
}

type AttendanceFilter struct {
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Date         string `form:"date"`
	Status       string `form:"status"`
	EmployeeID   int64  `form:"employeeId" binding:"omitempty,min=1"`
	EmployeeCode string `form:"employeeCode"`
}

type AttendanceResponse struct {
	ID                 int64      `json:"id"`
	EmployeeID         int64      `json:"employeeId"`
	EmployeeCode       string     `json:"employeeCode,omitempty"`
	EmployeeName       string     `json:"employeeName,omitempty"`
	Department         string     `json:"department,omitempty"`
	Date               Date       `json:"date"`
	CheckIn            *ClockTime `json:"checkIn"`
	CheckOut           *ClockTime `json:"checkOut"`
	HoursWorked        *float64   `json:"hoursWorked"`
	Status             string     `json:"status"`
	VerificationMethod string     `json:"verificationMethod"`
	Notes              *string    `json:"notes,omitempty"`
	ShiftName          *string    `json:"shiftName,omitempty"`
}

type MarkAttendanceResponse struct {
	CheckType    string             `json:"checkType"`
	EmployeeName string             `json:"employeeName"`
	Attendance   AttendanceResponse `json:"attendance"`
	Message      string             `json:"-"`
}

type TodayStatusResponse struct {
	EmployeeID    int64               `json:"employeeId"`
	EmployeeCode  string              `json:"employeeCode"`
	EmployeeName  string              `json:"employeeName"`
	Date          Date                `json:"date"`
	Status        string              `json:"status"`
	HasCheckedIn  bool                `json:"hasCheckedIn"`
	HasCheckedOut bool                `json:"hasCheckedOut"`
	Attendance    *AttendanceResponse `json:"attendance"`
}

type StatsResponse struct {
	Date              Date    `json:"date"`
	TotalEmployees    int64   `json:"totalEmployees"`
	Present           int64   `json:"present"`
	CheckedOut        int64   `json:"checkedOut"`
	Late              int64   `json:"late"`
	CurrentlyInOffice int64   `json:"currentlyInOffice"`
	Absent            int64   `json:"absent"`
	OnTime            int64   `json:"onTime"`
	AttendanceRate    float64 `json:"attendanceRate"`
}

type CorrectionResponse struct {
	ID           int64      `json:"id"`
	AttendanceID int64      `json:"attendanceId"`
	EmployeeID   int64      `json:"employeeId"`
	CorrectedBy  int64      `json:"correctedBy"`
	OldCheckIn   *ClockTime `json:"oldCheckIn"`
	OldCheckOut  *ClockTime `json:"oldCheckOut"`
	OldStatus    string     `json:"oldStatus"`
	NewCheckIn   *ClockTime `json:"newCheckIn"`
	NewCheckOut  *ClockTime `json:"newCheckOut"`
	NewStatus    string     `json:"newStatus"`
	Reason       string     `json:"reason"`
	CreatedAt    string     `json:"createdAt"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		Date:               a.RecordDate,
		CheckIn:            a.CheckInTime,
		CheckOut:           a.CheckOutTime,
		Status:             a.Status,
		VerificationMethod: a.VerificationMethod,
		Notes:              a.Notes,
		ShiftName:          a.ShiftName,
	}
	if a.HoursWorked.Valid {
		h, _ := a.HoursWorked.Decimal.Round(2).Float64()
		resp.HoursWorked = &h
	}
	return resp
}

func mapRowToResponse(r AttendanceRow) AttendanceResponse {
	resp := mapToResponse(r.Attendance)
	resp.EmployeeCode = r.EmployeeCode
	resp.EmployeeName = strings.TrimSpace(r.FirstName + " " + r.LastName)
	resp.Department = r.Department
	return resp
}

func mapCorrection(c Correction) CorrectionResponse {
	return CorrectionResponse{
		ID:           c.ID,
		AttendanceID: c.AttendanceID,
		EmployeeID:   c.EmployeeID,
		CorrectedBy:  c.CorrectedBy,
		OldCheckIn:   c.OldCheckIn,
		OldCheckOut:  c.OldCheckOut,
		OldStatus:    c.OldStatus,
		NewCheckIn:   c.NewCheckIn,
		NewCheckOut:  c.NewCheckOut,
		NewStatus:    c.NewStatus,
		Reason:       c.Reason,
		CreatedAt:    c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
