package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	payrollerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/payroll/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	monthLayout        = "2006-01"
	monthDisplayLayout = "January 2006"
	calculateWorkers   = 4
)

// EmployeeLookup resolves employees by id or EMP### code.
type EmployeeLookup interface {
	FindByRef(ctx context.Context, ref string) (*employee.Employee, error)
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetSalaryConfig(ctx context.Context, scope domain.Scope, employeeRef string) (SalaryConfigResponse, error)
	CreateSalaryConfig(ctx context.Context, req SalaryConfigRequest) (SalaryConfigResponse, error)
	UpdateSalaryConfig(ctx context.Context, employeeRef string, req SalaryConfigRequest) (SalaryConfigResponse, error)
	ListSalaryConfigs(ctx context.Context, scope domain.Scope) ([]SalaryConfigResponse, error)

	CalculateSalary(ctx context.Context, employeeRef, monthYear string) (PaymentResponse, error)
	CalculateMonth(ctx context.Context, monthYear string) (CalculateMonthResponse, error)

	UpsertPayMonth(ctx context.Context, req PayMonthRequest) (PayMonthResponse, error)
	ListPayMonths(ctx context.Context) ([]PayMonthResponse, error)

	ListPayments(ctx context.Context, scope domain.Scope, filter PaymentFilter) ([]PaymentResponse, error)
	GetPayment(ctx context.Context, scope domain.Scope, id int64) (PaymentResponse, error)
	MarkPaymentPaid(ctx context.Context, id int64) (PaymentResponse, error)
	RenderPayslip(ctx context.Context, scope domain.Scope, id int64) (Payslip, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   EmployeeLookup
	notifier    notification.Notifier
	companyName string
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeLookup,
	notifier notification.Notifier,
	companyName string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		notifier:    notifier,
		companyName: companyName,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) inTx(ctx context.Context, fn func(qtx Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// parseMonth returns the first and last day of a YYYY-MM month.
func parseMonth(monthYear string) (time.Time, time.Time, error) {
	monthYear = strings.TrimSpace(monthYear)
	if len(monthYear) != len(monthLayout) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	start, err := time.Parse(monthLayout, monthYear)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return start, start.AddDate(0, 1, -1), nil
}

func (s *service) resolveEmployee(ctx context.Context, ref string) (*employee.Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperror.RequiredField("employeeId")
	}
	empl, err := s.employees.FindByRef(ctx, ref)
	if err != nil {
		if isNotFound(err) {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if empl == nil {
		return nil, payrollerrors.ErrEmployeeNotFound
	}
	return empl, nil
}

func (s *service) loadConfig(ctx context.Context, employeeID int64) (*SalaryConfig, error) {
	cfg, err := s.repo.FindConfig(ctx, employeeID)
	if err != nil {
		if isNotFound(err) {
			return nil, payrollerrors.ErrSalaryConfigNotFound
		}
		return nil, err
	}
	return cfg, nil
}

func (s *service) GetSalaryConfig(ctx context.Context, scope domain.Scope, employeeRef string) (SalaryConfigResponse, error) {
	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return SalaryConfigResponse{}, err
	}
	if !scope.Allows(empl.ID, empl.Department) {
		return SalaryConfigResponse{}, payrollerrors.ErrPayrollDenied
	}

	cfg, err := s.loadConfig(ctx, empl.ID)
	if err != nil {
		return SalaryConfigResponse{}, err
	}
	resp := mapConfig(*cfg)
	resp.EmployeeCode = empl.EmployeeCode
	resp.EmployeeName = empl.FullName()
	resp.Department = empl.Department
	return resp, nil
}

func (s *service) CreateSalaryConfig(ctx context.Context, req SalaryConfigRequest) (SalaryConfigResponse, error) {
	if err := ValidateSalaryConfig(req); err != nil {
		return SalaryConfigResponse{}, err
	}
	empl, err := s.resolveEmployee(ctx, string(req.EmployeeID))
	if err != nil {
		return SalaryConfigResponse{}, err
	}
	return s.saveConfig(ctx, empl, req)
}

func (s *service) UpdateSalaryConfig(ctx context.Context, employeeRef string, req SalaryConfigRequest) (SalaryConfigResponse, error) {
	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return SalaryConfigResponse{}, err
	}

	merged := req
	existing, err := s.repo.FindConfig(ctx, empl.ID)
	switch {
	case err == nil:
		merged = mergeConfigRequest(requestOf(*existing), req)
	case !isNotFound(err):
		return SalaryConfigResponse{}, err
	}
	merged.EmployeeID = attendance.EmployeeRef(strings.TrimSpace(employeeRef))

	if err := ValidateSalaryConfig(merged); err != nil {
		return SalaryConfigResponse{}, err
	}
	return s.saveConfig(ctx, empl, merged)
}

func (s *service) saveConfig(ctx context.Context, empl *employee.Employee, req SalaryConfigRequest) (SalaryConfigResponse, error) {
	cfg := configFrom(empl.ID, req)
	now := s.now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	if err := s.repo.UpsertConfig(ctx, &cfg); err != nil {
		s.logger.Error("failed to save salary config", zap.Int64("employee_id", empl.ID), zap.Error(err))
		return SalaryConfigResponse{}, err
	}
	s.logger.Info("salary config saved",
		zap.Int64("employee_id", empl.ID),
		zap.String("base_salary", cfg.BaseSalary.StringFixed(2)),
	)

	resp := mapConfig(cfg)
	resp.EmployeeCode = empl.EmployeeCode
	resp.EmployeeName = empl.FullName()
	resp.Department = empl.Department
	return resp, nil
}

func (s *service) ListSalaryConfigs(ctx context.Context, scope domain.Scope) ([]SalaryConfigResponse, error) {
	rows, err := s.repo.ListConfigs(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]SalaryConfigResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapConfigRow(r))
	}
	return out, nil
}

func (s *service) CalculateSalary(ctx context.Context, employeeRef, monthYear string) (PaymentResponse, error) {
	start, end, err := parseMonth(monthYear)
	if err != nil {
		return PaymentResponse{}, err
	}
	monthYear = start.Format(monthLayout)

	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return PaymentResponse{}, err
	}
	cfg, err := s.loadConfig(ctx, empl.ID)
	if err != nil {
		return PaymentResponse{}, err
	}

	summary, err := s.repo.AttendanceSummary(ctx, empl.ID, monthYear)
	if err != nil {
		s.logger.Warn("attendance summary unavailable, computing with zero attendance",
			zap.Int64("employee_id", empl.ID),
			zap.String("month_year", monthYear),
			zap.Error(err),
		)
		summary = AttendanceSummary{}
	}

	b := CalculateSalaryComponents(*cfg, summary)
	now := s.now()
	payment := &SalaryPayment{
		EmployeeID:           empl.ID,
		MonthYear:            monthYear,
		BaseSalary:           cfg.BaseSalary,
		DaysWorked:           summary.TotalDays,
		DaysPresent:          summary.PresentDays,
		DaysAbsent:           summary.AbsentDays,
		LateDays:             summary.LateDays,
		OvertimeHours:        b.OvertimeHours,
		OvertimeAmount:       b.OvertimeAmount,
		BonusAmount:          b.BonusAmount,
		DeductionAmount:      b.TotalDeductions,
		TaxAmount:            b.TaxAmount,
		SocialSecurityAmount: b.SocialSecurityAmount,
		NetSalary:            b.NetSalary,
		Currency:             cfg.Currency,
		PaymentStatus:        PaymentStatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.inTx(ctx, func(qtx Repository) error {
		month := &PayMonth{
			MonthYear:   monthYear,
			DisplayName: start.Format(monthDisplayLayout),
			StartDate:   start,
			EndDate:     end,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := qtx.EnsurePayMonth(ctx, month); err != nil {
			return err
		}
		existing, err := qtx.FindPayment(ctx, empl.ID, monthYear)
		if err != nil {
			return err
		}
		if existing != nil && existing.PaymentStatus == PaymentStatusPaid {
			return payrollerrors.ErrPaymentAlreadyPaid
		}
		return qtx.UpsertPayment(ctx, payment)
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	components := b.components()
	if err := s.repo.ReplaceComponents(ctx, payment.ID, components); err != nil {
		s.logger.Warn("failed to store salary components",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err),
		)
	} else {
		payment.Components = components
	}

	s.logger.Info("salary calculated",
		zap.Int64("employee_id", empl.ID),
		zap.String("month_year", monthYear),
		zap.String("net_salary", payment.NetSalary.StringFixed(2)),
	)

	s.notifier.Publish(ctx, notification.UserEvent(
		empl.ID,
		"Salary calculated",
		fmt.Sprintf("Your salary for %s has been calculated: %s %s",
			start.Format(monthDisplayLayout), payment.NetSalary.StringFixed(2), payment.Currency),
		notification.TypeSalaryCalculated,
		map[string]any{
			"payment_id": payment.ID,
			"month_year": monthYear,
			"net_salary": payment.NetSalary.StringFixed(2),
		},
	))

	resp := mapPayment(*payment)
	resp.EmployeeCode = empl.EmployeeCode
	resp.EmployeeName = empl.FullName()
	resp.Department = empl.Department
	return resp, nil
}

// CalculateMonth computes every active employee. Employees without a salary
// config are skipped; other failures are reported per employee.
func (s *service) CalculateMonth(ctx context.Context, monthYear string) (CalculateMonthResponse, error) {
	start, _, err := parseMonth(monthYear)
	if err != nil {
		return CalculateMonthResponse{}, err
	}
	monthYear = start.Format(monthLayout)

	employees, err := s.employees.FindActive(ctx)
	if err != nil {
		return CalculateMonthResponse{}, err
	}

	out := CalculateMonthResponse{
		MonthYear:  monthYear,
		Calculated: []PaymentResponse{},
		Skipped:    []string{},
		Failed:     []MonthFailure{},
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(calculateWorkers)
	for _, e := range employees {
		e := e
		g.Go(func() error {
			resp, err := s.CalculateSalary(ctx, strconv.FormatInt(e.ID, 10), monthYear)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				out.Calculated = append(out.Calculated, resp)
			case errors.Is(err, payrollerrors.ErrSalaryConfigNotFound):
				out.Skipped = append(out.Skipped, e.EmployeeCode)
			default:
				out.Failed = append(out.Failed, MonthFailure{
					EmployeeID:   e.ID,
					EmployeeCode: e.EmployeeCode,
					Error:        err.Error(),
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(out.Calculated, func(i, j int) bool { return out.Calculated[i].EmployeeCode < out.Calculated[j].EmployeeCode })
	sort.Strings(out.Skipped)
	sort.Slice(out.Failed, func(i, j int) bool { return out.Failed[i].EmployeeCode < out.Failed[j].EmployeeCode })

	s.logger.Info("month calculated",
		zap.String("month_year", monthYear),
		zap.Int("calculated", len(out.Calculated)),
		zap.Int("skipped", len(out.Skipped)),
		zap.Int("failed", len(out.Failed)),
	)
	return out, nil
}

func (s *service) UpsertPayMonth(ctx context.Context, req PayMonthRequest) (PayMonthResponse, error) {
	start, end, err := parseMonth(req.MonthYear)
	if err != nil {
		return PayMonthResponse{}, err
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = start.Format(monthDisplayLayout)
	}
	now := s.now()
	m := PayMonth{
		MonthYear:   start.Format(monthLayout),
		DisplayName: name,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.UpsertPayMonth(ctx, &m); err != nil {
		return PayMonthResponse{}, err
	}
	return mapPayMonth(m), nil
}

func (s *service) ListPayMonths(ctx context.Context) ([]PayMonthResponse, error) {
	rows, err := s.repo.ListPayMonths(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PayMonthResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, mapPayMonth(m))
	}
	return out, nil
}

func (s *service) ListPayments(ctx context.Context, scope domain.Scope, filter PaymentFilter) ([]PaymentResponse, error) {
	month := strings.TrimSpace(filter.MonthYear)
	if month != "" {
		start, _, err := parseMonth(month)
		if err != nil {
			return nil, err
		}
		month = start.Format(monthLayout)
	}
	rows, err := s.repo.ListPayments(ctx, scope, month)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapPaymentRow(r))
	}
	return out, nil
}

func (s *service) loadPayment(ctx context.Context, scope domain.Scope, id int64) (PaymentResponse, error) {
	if id <= 0 {
		return PaymentResponse{}, payrollerrors.ErrInvalidPaymentID
	}
	row, err := s.repo.FindPaymentRow(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return PaymentResponse{}, payrollerrors.ErrPaymentNotFound
		}
		return PaymentResponse{}, err
	}
	if !scope.Allows(row.EmployeeID, row.Department) {
		return PaymentResponse{}, payrollerrors.ErrPayrollDenied
	}

	components, err := s.repo.ListComponents(ctx, id)
	if err != nil {
		return PaymentResponse{}, err
	}
	row.Components = components
	return mapPaymentRow(*row), nil
}

func (s *service) GetPayment(ctx context.Context, scope domain.Scope, id int64) (PaymentResponse, error) {
	return s.loadPayment(ctx, scope, id)
}

func (s *service) MarkPaymentPaid(ctx context.Context, id int64) (PaymentResponse, error) {
	p, err := s.loadPayment(ctx, domain.Scope{Kind: domain.ScopeAll}, id)
	if err != nil {
		return PaymentResponse{}, err
	}
	if p.PaymentStatus == PaymentStatusPaid {
		return PaymentResponse{}, payrollerrors.ErrPaymentAlreadyPaid
	}

	now := s.now()
	n, err := s.repo.MarkPaid(ctx, id, now)
	if err != nil {
		return PaymentResponse{}, err
	}
	if n == 0 {
		return PaymentResponse{}, payrollerrors.ErrPaymentAlreadyPaid
	}
	p.PaymentStatus = PaymentStatusPaid
	p.PaidAt = &now

	s.notifier.Publish(ctx, notification.UserEvent(
		p.EmployeeID,
		"Salary paid",
		fmt.Sprintf("Your salary for %s has been paid: %s %s", p.MonthYear, p.NetSalary.StringFixed(2), p.Currency),
		notification.TypeSalaryCalculated,
		map[string]any{"payment_id": p.ID, "month_year": p.MonthYear, "status": PaymentStatusPaid},
	))
	return p, nil
}

func (s *service) RenderPayslip(ctx context.Context, scope domain.Scope, id int64) (Payslip, error) {
	p, err := s.loadPayment(ctx, scope, id)
	if err != nil {
		return Payslip{}, err
	}
	content, err := renderPayslipPDF(s.companyName, p, s.now())
	if err != nil {
		s.logger.Error("failed to render payslip", zap.Int64("payment_id", id), zap.Error(err))
		return Payslip{}, err
	}
	return Payslip{
		FileName: fmt.Sprintf("payslip_%s_%s.pdf", p.EmployeeCode, p.MonthYear),
		Content:  content,
	}, nil
}

func requestOf(c SalaryConfig) SalaryConfigRequest {
	return SalaryConfigRequest{
		BaseSalary:         decimalPtr(c.BaseSalary),
		Currency:           c.Currency,
		PaymentMethod:      stringPtr(c.PaymentMethod),
		BankName:           stringPtr(c.BankName),
		BankAccount:        stringPtr(c.BankAccount),
		TaxRate:            decimalPtr(c.TaxRate),
		SocialSecurityRate: decimalPtr(c.SocialSecurityRate),
		OtherDeductions:    decimalPtr(c.OtherDeductions),
		BonusFixed:         decimalPtr(c.BonusFixed),
		BonusVariable:      decimalPtr(c.BonusVariable),
	}
}

// mergeConfigRequest overlays the fields present in patch onto base.
func mergeConfigRequest(base, patch SalaryConfigRequest) SalaryConfigRequest {
	if patch.BaseSalary != nil {
		base.BaseSalary = patch.BaseSalary
	}
	if patch.Currency != "" {
		base.Currency = patch.Currency
	}
	if patch.PaymentMethod != nil {
		base.PaymentMethod = patch.PaymentMethod
	}
	if patch.BankName != nil {
		base.BankName = patch.BankName
	}
	if patch.BankAccount != nil {
		base.BankAccount = patch.BankAccount
	}
	if patch.TaxRate != nil {
		base.TaxRate = patch.TaxRate
	}
	if patch.SocialSecurityRate != nil {
		base.SocialSecurityRate = patch.SocialSecurityRate
	}
	if patch.OtherDeductions != nil {
		base.OtherDeductions = patch.OtherDeductions
	}
	if patch.BonusFixed != nil {
		base.BonusFixed = patch.BonusFixed
	}
	if patch.BonusVariable != nil {
		base.BonusVariable = patch.BonusVariable
	}
	return base
}

func configFrom(employeeID int64, req SalaryConfigRequest) SalaryConfig {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return SalaryConfig{
		EmployeeID:         employeeID,
		BaseSalary:         decimalOr(req.BaseSalary).Round(2),
		Currency:           currency,
		PaymentMethod:      stringOr(req.PaymentMethod),
		BankName:           stringOr(req.BankName),
		BankAccount:        stringOr(req.BankAccount),
		TaxRate:            decimalOr(req.TaxRate),
		SocialSecurityRate: decimalOr(req.SocialSecurityRate),
		OtherDeductions:    decimalOr(req.OtherDeductions).Round(2),
		BonusFixed:         decimalOr(req.BonusFixed).Round(2),
		BonusVariable:      decimalOr(req.BonusVariable),
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func decimalOr(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func stringPtr(s string) *string { return &s }

func stringOr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
