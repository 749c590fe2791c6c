package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

const (
	ComponentBase      = "base"
	ComponentOvertime  = "overtime"
	ComponentBonus     = "bonus"
	ComponentDeduction = "deduction"
	ComponentTax       = "tax"
)

const DefaultCurrency = "MAD"

type SalaryConfig struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID         int64           `gorm:"column:employee_id;not null;uniqueIndex:uq_salary_configs_employee"`
	BaseSalary         decimal.Decimal `gorm:"column:base_salary;type:numeric(12,2);not null"`
	Currency           string          `gorm:"column:currency;type:varchar(3);not null;default:MAD"`
	PaymentMethod      string          `gorm:"column:payment_method;type:varchar(30)"`
	BankName           string          `gorm:"column:bank_name;type:varchar(100)"`
	BankAccount        string          `gorm:"column:bank_account;type:varchar(50)"`
	TaxRate            decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	SocialSecurityRate decimal.Decimal `gorm:"column:social_security_rate;type:numeric(5,2);not null;default:0"`
	OtherDeductions    decimal.Decimal `gorm:"column:other_deductions;type:numeric(12,2);not null;default:0"`
	BonusFixed         decimal.Decimal `gorm:"column:bonus_fixed;type:numeric(12,2);not null;default:0"`
	BonusVariable      decimal.Decimal `gorm:"column:bonus_variable;type:numeric(5,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (SalaryConfig) TableName() string {
	return "salary_configs"
}

// SalaryConfigRow is a config joined with its employee.
type SalaryConfigRow struct {
	SalaryConfig `gorm:"embedded"`
	EmployeeCode string `gorm:"column:employee_code"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Department   string `gorm:"column:department"`
}

type PayMonth struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	MonthYear   string    `gorm:"column:month_year;type:varchar(7);not null;uniqueIndex:uq_pay_months_month_year"`
	DisplayName string    `gorm:"column:display_name;type:varchar(50);not null"`
	StartDate   time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time `gorm:"column:end_date;type:date;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (PayMonth) TableName() string {
	return "pay_months"
}

type SalaryPayment struct {
	ID                   int64             `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID           int64             `gorm:"column:employee_id;not null;uniqueIndex:uq_salary_payments_employee_month"`
	MonthYear            string            `gorm:"column:month_year;type:varchar(7);not null;uniqueIndex:uq_salary_payments_employee_month"`
	BaseSalary           decimal.Decimal   `gorm:"column:base_salary;type:numeric(12,2);not null"`
	DaysWorked           int64             `gorm:"column:days_worked;not null;default:0"`
	DaysAbsent           int64             `gorm:"column:days_absent;not null;default:0"`
	DaysPresent          int64             `gorm:"column:days_present;not null;default:0"`
	LateDays             int64             `gorm:"column:late_days;not null;default:0"`
	OvertimeHours        decimal.Decimal   `gorm:"column:overtime_hours;type:numeric(8,2);not null;default:0"`
	OvertimeAmount       decimal.Decimal   `gorm:"column:overtime_amount;type:numeric(12,2);not null;default:0"`
	BonusAmount          decimal.Decimal   `gorm:"column:bonus_amount;type:numeric(12,2);not null;default:0"`
	DeductionAmount      decimal.Decimal   `gorm:"column:deduction_amount;type:numeric(12,2);not null;default:0"`
	TaxAmount            decimal.Decimal   `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	SocialSecurityAmount decimal.Decimal   `gorm:"column:social_security_amount;type:numeric(12,2);not null;default:0"`
	NetSalary            decimal.Decimal   `gorm:"column:net_salary;type:numeric(12,2);not null;default:0"`
	Currency             string            `gorm:"column:currency;type:varchar(3);not null"`
	PaymentStatus        string            `gorm:"column:payment_status;type:varchar(20);not null"`
	PaidAt               *time.Time        `gorm:"column:paid_at"`
	CreatedAt            time.Time         `gorm:"column:created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at"`
	Components           []SalaryComponent `gorm:"foreignKey:PaymentID"`
}

func (SalaryPayment) TableName() string {
	return "salary_payments"
}

// PaymentRow is a payment joined with its employee.
type PaymentRow struct {
	SalaryPayment `gorm:"embedded"`
	EmployeeCode  string `gorm:"column:employee_code"`
	FirstName     string `gorm:"column:first_name"`
	LastName      string `gorm:"column:last_name"`
	Department    string `gorm:"column:department"`
}

type SalaryComponent struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PaymentID     int64           `gorm:"column:payment_id;not null;index"`
	ComponentType string          `gorm:"column:component_type;type:varchar(20);not null"`
	Name          string          `gorm:"column:name;type:varchar(120);not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

// AttendanceSummary aggregates one employee's attendance over a month.
type AttendanceSummary struct {
	TotalDays      int64           `gorm:"column:total_days"`
	PresentDays    int64           `gorm:"column:present_days"`
	AbsentDays     int64           `gorm:"column:absent_days"`
	LateDays       int64           `gorm:"column:late_days"`
	IncompleteDays int64           `gorm:"column:incomplete_days"`
	AvgHours       decimal.Decimal `gorm:"column:avg_hours"`
	TotalHours     decimal.Decimal `gorm:"column:total_hours"`
}
