package payroll

import "github.com/shopspring/decimal"

// WorkingDaysPerMonth is the fixed proration base regardless of the calendar.
const WorkingDaysPerMonth = 22

const (
	hoursPerDay        = 8
	overtimeMultiplier = "1.5"
)

var (
	hundred  = decimal.NewFromInt(100)
	daysBase = decimal.NewFromInt(WorkingDaysPerMonth)
)

type SalaryBreakdown struct {
	BaseAmount           decimal.Decimal
	OvertimeHours        decimal.Decimal
	OvertimeAmount       decimal.Decimal
	BonusAmount          decimal.Decimal
	AbsenceDeduction     decimal.Decimal
	TaxAmount            decimal.Decimal
	SocialSecurityAmount decimal.Decimal
	OtherDeductions      decimal.Decimal
	TotalDeductions      decimal.Decimal
	NetSalary            decimal.Decimal
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateSalaryComponents prorates the base salary on present days and
// derives overtime, bonus, deductions and net pay. Net pay is never negative.
func CalculateSalaryComponents(cfg SalaryConfig, s AttendanceSummary) SalaryBreakdown {
	dailyRate := cfg.BaseSalary.Div(daysBase)
	hourlyRate := dailyRate.Div(decimal.NewFromInt(hoursPerDay))

	base := dailyRate.Mul(decimal.NewFromInt(s.PresentDays))

	overtimeHours := s.TotalHours.Sub(decimal.NewFromInt(s.PresentDays * hoursPerDay))
	if overtimeHours.IsNegative() {
		overtimeHours = decimal.Zero
	}
	overtime := overtimeHours.Mul(hourlyRate).Mul(decimal.RequireFromString(overtimeMultiplier))

	bonus := cfg.BonusFixed.Add(cfg.BonusVariable.Div(hundred).Mul(base))
	absence := dailyRate.Mul(decimal.NewFromInt(s.AbsentDays))
	tax := base.Mul(cfg.TaxRate).Div(hundred)
	ss := base.Mul(cfg.SocialSecurityRate).Div(hundred)

	totalDeductions := absence.Add(tax).Add(ss).Add(cfg.OtherDeductions)
	net := base.Add(overtime).Add(bonus).Sub(totalDeductions)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return SalaryBreakdown{
		BaseAmount:           round2(base),
		OvertimeHours:        round2(overtimeHours),
		OvertimeAmount:       round2(overtime),
		BonusAmount:          round2(bonus),
		AbsenceDeduction:     round2(absence),
		TaxAmount:            round2(tax),
		SocialSecurityAmount: round2(ss),
		OtherDeductions:      round2(cfg.OtherDeductions),
		TotalDeductions:      round2(totalDeductions),
		NetSalary:            round2(net),
	}
}

// components lists the non-zero itemized lines of a breakdown.
func (b SalaryBreakdown) components() []SalaryComponent {
	lines := []SalaryComponent{
		{ComponentType: ComponentBase, Name: "Base salary (prorated)", Amount: b.BaseAmount},
		{ComponentType: ComponentOvertime, Name: "Overtime", Amount: b.OvertimeAmount},
		{ComponentType: ComponentBonus, Name: "Bonus", Amount: b.BonusAmount},
		{ComponentType: ComponentDeduction, Name: "Absences and other deductions", Amount: b.AbsenceDeduction.Add(b.OtherDeductions)},
		{ComponentType: ComponentTax, Name: "Income tax and social security", Amount: b.TaxAmount.Add(b.SocialSecurityAmount)},
	}
	out := lines[:0]
	for _, l := range lines {
		if !l.Amount.IsZero() {
			out = append(out, l)
		}
	}
	return out
}
