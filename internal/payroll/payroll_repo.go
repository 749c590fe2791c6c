package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindConfig(ctx context.Context, employeeID int64) (*SalaryConfig, error)
	UpsertConfig(ctx context.Context, cfg *SalaryConfig) error
	ListConfigs(ctx context.Context, scope domain.Scope) ([]SalaryConfigRow, error)

	AttendanceSummary(ctx context.Context, employeeID int64, monthYear string) (AttendanceSummary, error)

	EnsurePayMonth(ctx context.Context, m *PayMonth) error
	UpsertPayMonth(ctx context.Context, m *PayMonth) error
	ListPayMonths(ctx context.Context) ([]PayMonth, error)

	FindPayment(ctx context.Context, employeeID int64, monthYear string) (*SalaryPayment, error)
	UpsertPayment(ctx context.Context, p *SalaryPayment) error
	ReplaceComponents(ctx context.Context, paymentID int64, components []SalaryComponent) error
	ListComponents(ctx context.Context, paymentID int64) ([]SalaryComponent, error)
	ListPayments(ctx context.Context, scope domain.Scope, monthYear string) ([]PaymentRow, error)
	FindPaymentRow(ctx context.Context, id int64) (*PaymentRow, error)
	MarkPaid(ctx context.Context, id int64, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return database.Session(ctx, r.db, r.tx)
}

func (r *repository) FindConfig(ctx context.Context, employeeID int64) (*SalaryConfig, error) {
	var cfg SalaryConfig
	if err := r.session(ctx).Where("employee_id = ?", employeeID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) UpsertConfig(ctx context.Context, cfg *SalaryConfig) error {
	return r.session(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_salary", "currency", "payment_method", "bank_name", "bank_account",
				"tax_rate", "social_security_rate", "other_deductions",
				"bonus_fixed", "bonus_variable", "updated_at",
			}),
		}).
		Create(cfg).Error
}

func (r *repository) ListConfigs(ctx context.Context, scope domain.Scope) ([]SalaryConfigRow, error) {
	var rows []SalaryConfigRow
	err := r.session(ctx).
		Table("salary_configs AS sc").
		Select("sc.*, e.employee_id AS employee_code, e.first_name, e.last_name, e.department").
		Joins("JOIN employees e ON e.id = sc.employee_id").
		Scopes(rbac.ScopeFilter(scope, "sc.employee_id", "e.department")).
		Order("e.employee_id ASC").
		Scan(&rows).Error
	return rows, err
}

// AttendanceSummary aggregates the calendar month containing monthYear-01.
func (r *repository) AttendanceSummary(ctx context.Context, employeeID int64, monthYear string) (AttendanceSummary, error) {
	var s AttendanceSummary
	err := r.session(ctx).Raw(`
SELECT
	COUNT(*) AS total_days,
	COUNT(*) FILTER (WHERE check_in_time IS NOT NULL) AS present_days,
	COUNT(*) FILTER (WHERE status = 'absent') AS absent_days,
	COUNT(*) FILTER (WHERE status = 'late') AS late_days,
	COUNT(*) FILTER (WHERE check_in_time IS NOT NULL AND check_out_time IS NULL) AS incomplete_days,
	COALESCE(AVG(hours_worked), 0) AS avg_hours,
	COALESCE(SUM(hours_worked), 0) AS total_hours
FROM attendance
WHERE employee_id = ?
  AND DATE_TRUNC('month', record_date) = DATE_TRUNC('month', ?::date)`,
		employeeID, monthYear+"-01",
	).Scan(&s).Error
	return s, err
}

func (r *repository) EnsurePayMonth(ctx context.Context, m *PayMonth) error {
	return r.session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month_year"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *repository) UpsertPayMonth(ctx context.Context, m *PayMonth) error {
	return r.session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month_year"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "start_date", "end_date", "updated_at"}),
		}).
		Create(m).Error
}

func (r *repository) ListPayMonths(ctx context.Context) ([]PayMonth, error) {
	var rows []PayMonth
	err := r.session(ctx).Order("month_year DESC").Find(&rows).Error
	return rows, err
}

// FindPayment returns nil without error when the month has not been computed.
func (r *repository) FindPayment(ctx context.Context, employeeID int64, monthYear string) (*SalaryPayment, error) {
	var p SalaryPayment
	err := r.session(ctx).
		Where("employee_id = ? AND month_year = ?", employeeID, monthYear).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpsertPayment(ctx context.Context, p *SalaryPayment) error {
	return r.session(ctx).
		Omit("Components").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_salary", "days_worked", "days_absent", "days_present", "late_days",
				"overtime_hours", "overtime_amount", "bonus_amount", "deduction_amount",
				"tax_amount", "social_security_amount", "net_salary", "currency", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) ReplaceComponents(ctx context.Context, paymentID int64, components []SalaryComponent) error {
	s := r.session(ctx)
	if err := s.Where("payment_id = ?", paymentID).Delete(&SalaryComponent{}).Error; err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}
	for i := range components {
		components[i].PaymentID = paymentID
	}
	return r.session(ctx).Create(&components).Error
}

func (r *repository) ListComponents(ctx context.Context, paymentID int64) ([]SalaryComponent, error) {
	var rows []SalaryComponent
	err := r.session(ctx).Where("payment_id = ?", paymentID).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) paymentRows(ctx context.Context) *gorm.DB {
	return r.session(ctx).
		Table("salary_payments AS sp").
		Select("sp.*, e.employee_id AS employee_code, e.first_name, e.last_name, e.department").
		Joins("JOIN employees e ON e.id = sp.employee_id")
}

func (r *repository) ListPayments(ctx context.Context, scope domain.Scope, monthYear string) ([]PaymentRow, error) {
	q := r.paymentRows(ctx).Scopes(rbac.ScopeFilter(scope, "sp.employee_id", "e.department"))
	if monthYear != "" {
		q = q.Where("sp.month_year = ?", monthYear)
	}
	var rows []PaymentRow
	err := q.Order("sp.month_year DESC, e.employee_id ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPaymentRow(ctx context.Context, id int64) (*PaymentRow, error) {
	var rows []PaymentRow
	if err := r.paymentRows(ctx).Where("sp.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) MarkPaid(ctx context.Context, id int64, at time.Time) (int64, error) {
	res := r.session(ctx).
		Model(&SalaryPayment{}).
		Where("id = ? AND payment_status <> ?", id, PaymentStatusPaid).
		Updates(map[string]any{
			"payment_status": PaymentStatusPaid,
			"paid_at":        at,
			"updated_at":     at,
		})
	return res.RowsAffected, res.Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
