package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslipPDF(t *testing.T) {
	p := PaymentResponse{
		ID:            7,
		EmployeeCode:  "EMP001",
		EmployeeName:  "Sara Amrani",
		Department:    "IT",
		MonthYear:     "2026-03",
		BaseSalary:    dec("2200"),
		NetSalary:     dec("1881.44"),
		Currency:      "MAD",
		PaymentStatus: PaymentStatusPending,
	}

	out, err := renderPayslipPDF("Smart Attendance", p, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}
