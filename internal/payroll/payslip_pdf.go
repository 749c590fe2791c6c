package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type Payslip struct {
	FileName string
	Content  []byte
}

func money(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}

// renderPayslipPDF lays out a single A4 page: header, employee block,
// attendance block, itemized lines and the net amount.
func renderPayslipPDF(company string, p PaymentResponse, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", p.EmployeeCode, p.MonthYear), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, company)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Payslip "+p.MonthYear)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeCode),
		fmt.Sprintf("Department: %s", p.Department),
		fmt.Sprintf("Status: %s", p.PaymentStatus),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Attendance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Days present: %d   Days absent: %d   Late days: %d   Overtime hours: %s",
		p.DaysPresent, p.DaysAbsent, p.LateDays, p.OvertimeHours.StringFixed(2)))
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	rows := [][2]string{
		{"Monthly base salary", money(p.BaseSalary, p.Currency)},
		{"Overtime", money(p.OvertimeAmount, p.Currency)},
		{"Bonus", money(p.BonusAmount, p.Currency)},
		{"Income tax", "-" + money(p.TaxAmount, p.Currency)},
		{"Social security", "-" + money(p.SocialSecurityAmount, p.Currency)},
		{"Total deductions", "-" + money(p.DeductionAmount, p.Currency)},
	}
	for _, r := range rows {
		pdf.CellFormat(120, 8, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, r[1], "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Net salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, money(p.NetSalary, p.Currency), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
