package payroll

import (
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"

	"github.com/shopspring/decimal"
)

// SalaryConfigRequest carries optional fields so an update can merge onto
// the stored configuration before validation.
type SalaryConfigRequest struct {
	EmployeeID         attendance.EmployeeRef `json:"employeeId"`
	BaseSalary         *decimal.Decimal       `json:"baseSalary"`
	Currency           string                 `json:"currency"`
	PaymentMethod      *string                `json:"paymentMethod"`
	BankName           *string                `json:"bankName"`
	BankAccount        *string                `json:"bankAccount"`
	TaxRate            *decimal.Decimal       `json:"taxRate"`
	SocialSecurityRate *decimal.Decimal       `json:"socialSecurityRate"`
	OtherDeductions    *decimal.Decimal       `json:"otherDeductions"`
	BonusFixed         *decimal.Decimal       `json:"bonusFixed"`
	BonusVariable      *decimal.Decimal       `json:"bonusVariable"`
}

type CalculateSalaryRequest struct {
	EmployeeID attendance.EmployeeRef `json:"employeeId" binding:"required"`
	MonthYear  string                 `json:"monthYear" binding:"required"`
}

type CalculateMonthRequest struct {
	MonthYear string `json:"monthYear" binding:"required"`
}

type PayMonthRequest struct {
	MonthYear   string `json:"monthYear" binding:"required"`
	DisplayName string `json:"displayName"`
}

type PaymentFilter struct {
	MonthYear string `form:"monthYear"`
}

type SalaryConfigResponse struct {
	ID                 int64           `json:"id"`
	EmployeeID         int64           `json:"employeeId"`
	EmployeeCode       string          `json:"employeeCode,omitempty"`
	EmployeeName       string          `json:"employeeName,omitempty"`
	Department         string          `json:"department,omitempty"`
	BaseSalary         decimal.Decimal `json:"baseSalary"`
	Currency           string          `json:"currency"`
	PaymentMethod      string          `json:"paymentMethod,omitempty"`
	BankName           string          `json:"bankName,omitempty"`
	BankAccount        string          `json:"bankAccount,omitempty"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	SocialSecurityRate decimal.Decimal `json:"socialSecurityRate"`
	OtherDeductions    decimal.Decimal `json:"otherDeductions"`
	BonusFixed         decimal.Decimal `json:"bonusFixed"`
	BonusVariable      decimal.Decimal `json:"bonusVariable"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type PayMonthResponse struct {
	ID          int64  `json:"id"`
	MonthYear   string `json:"monthYear"`
	DisplayName string `json:"displayName"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type ComponentResponse struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PaymentResponse struct {
	ID                   int64               `json:"id"`
	EmployeeID           int64               `json:"employeeId"`
	EmployeeCode         string              `json:"employeeCode,omitempty"`
	EmployeeName         string              `json:"employeeName,omitempty"`
	Department           string              `json:"department,omitempty"`
	MonthYear            string              `json:"monthYear"`
	BaseSalary           decimal.Decimal     `json:"baseSalary"`
	DaysWorked           int64               `json:"daysWorked"`
	DaysPresent          int64               `json:"daysPresent"`
	DaysAbsent           int64               `json:"daysAbsent"`
	LateDays             int64               `json:"lateDays"`
	OvertimeHours        decimal.Decimal     `json:"overtimeHours"`
	OvertimeAmount       decimal.Decimal     `json:"overtimeAmount"`
	BonusAmount          decimal.Decimal     `json:"bonusAmount"`
	DeductionAmount      decimal.Decimal     `json:"deductionAmount"`
	TaxAmount            decimal.Decimal     `json:"taxAmount"`
	SocialSecurityAmount decimal.Decimal     `json:"socialSecurityAmount"`
	NetSalary            decimal.Decimal     `json:"netSalary"`
	Currency             string              `json:"currency"`
	PaymentStatus        string              `json:"paymentStatus"`
	PaidAt               *time.Time          `json:"paidAt,omitempty"`
	Components           []ComponentResponse `json:"components,omitempty"`
}

type MonthFailure struct {
	EmployeeID   int64  `json:"employeeId"`
	EmployeeCode string `json:"employeeCode"`
	Error        string `json:"error"`
}

type CalculateMonthResponse struct {
	MonthYear  string            `json:"monthYear"`
	Calculated []PaymentResponse `json:"calculated"`
	Skipped    []string          `json:"skipped"`
	Failed     []MonthFailure    `json:"failed"`
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

func mapConfig(c SalaryConfig) SalaryConfigResponse {
	return SalaryConfigResponse{
		ID:                 c.ID,
		EmployeeID:         c.EmployeeID,
		BaseSalary:         c.BaseSalary,
		Currency:           c.Currency,
		PaymentMethod:      c.PaymentMethod,
		BankName:           c.BankName,
		BankAccount:        c.BankAccount,
		TaxRate:            c.TaxRate,
		SocialSecurityRate: c.SocialSecurityRate,
		OtherDeductions:    c.OtherDeductions,
		BonusFixed:         c.BonusFixed,
		BonusVariable:      c.BonusVariable,
		UpdatedAt:          c.UpdatedAt,
	}
}

func mapConfigRow(r SalaryConfigRow) SalaryConfigResponse {
	resp := mapConfig(r.SalaryConfig)
	resp.EmployeeCode = r.EmployeeCode
	resp.EmployeeName = fullName(r.FirstName, r.LastName)
	resp.Department = r.Department
	return resp
}

func mapPayMonth(m PayMonth) PayMonthResponse {
	return PayMonthResponse{
		ID:          m.ID,
		MonthYear:   m.MonthYear,
		DisplayName: m.DisplayName,
		StartDate:   m.StartDate.Format(time.DateOnly),
		EndDate:     m.EndDate.Format(time.DateOnly),
	}
}

func mapPayment(p SalaryPayment) PaymentResponse {
	resp := PaymentResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		MonthYear:            p.MonthYear,
		BaseSalary:           p.BaseSalary,
		DaysWorked:           p.DaysWorked,
		DaysPresent:          p.DaysPresent,
		DaysAbsent:           p.DaysAbsent,
		LateDays:             p.LateDays,
		OvertimeHours:        p.OvertimeHours,
		OvertimeAmount:       p.OvertimeAmount,
		BonusAmount:          p.BonusAmount,
		DeductionAmount:      p.DeductionAmount,
		TaxAmount:            p.TaxAmount,
		SocialSecurityAmount: p.SocialSecurityAmount,
		NetSalary:            p.NetSalary,
		Currency:             p.Currency,
		PaymentStatus:        p.PaymentStatus,
		PaidAt:               p.PaidAt,
	}
	for _, c := range p.Components {
		resp.Components = append(resp.Components, ComponentResponse{
			Type:   c.ComponentType,
			Name:   c.Name,
			Amount: c.Amount,
		})
	}
	return resp
}

func mapPaymentRow(r PaymentRow) PaymentResponse {
	resp := mapPayment(r.SalaryPayment)
	resp.EmployeeCode = r.EmployeeCode
	resp.EmployeeName = fullName(r.FirstName, r.LastName)
	resp.Department = r.Department
	return resp
}
