package employee

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, scope domain.Scope, filter EmployeeFilter) ([]Employee, error)
	FindOptions(ctx context.Context, scope domain.Scope) ([]Employee, error)
	FindActive(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByRef(ctx context.Context, ref string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Deactivate(ctx context.Context, id int64) error
	CountDependents(ctx context.Context, id int64) (DependentCounts, error)
	Purge(ctx context.Context, id int64) (DependentCounts, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.session(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, scope domain.Scope, filter EmployeeFilter) ([]Employee, error) {
	q := r.session(ctx).
		Scopes(rbac.ScopeFilter(scope, "id", "department"))

	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	switch filter.Status {
	case StatusActive:
		q = q.Where("is_active = ?", true)
	case StatusInactive:
		q = q.Where("is_active = ?", false)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_id) LIKE ?",
			like, like, like, like,
		)
	}

	var rows []Employee
	err := q.Order("employee_id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindOptions(ctx context.Context, scope domain.Scope) ([]Employee, error) {
	var rows []Employee
	err := r.session(ctx).
		Select("id", "employee_id", "first_name", "last_name", "department").
		Scopes(rbac.ScopeFilter(scope, "id", "department")).
		Where("is_active = ?", true).
		Order("first_name ASC, last_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActive(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.session(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.session(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindByRef resolves either a numeric primary id or an EMP### code.
func (r *repository) FindByRef(ctx context.Context, ref string) (*Employee, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		empl, err := r.FindByID(ctx, id)
		if err == nil {
			return empl, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var empl Employee
	err := r.session(ctx).First(&empl, "employee_id = ?", strings.ToUpper(ref)).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.session(ctx).First(&empl, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.session(ctx).Save(empl).Error
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	res := r.session(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "status": StatusInactive})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountDependents(ctx context.Context, id int64) (DependentCounts, error) {
	var c DependentCounts
	err := r.session(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM attendance WHERE employee_id = @id) AS attendance_records,
			(SELECT COUNT(*) FROM attendance_corrections WHERE employee_id = @id) AS attendance_corrections,
			(SELECT COUNT(*) FROM face_encodings WHERE employee_id = @id) AS face_encodings,
			(SELECT COUNT(*) FROM notifications WHERE user_id = @id) AS notifications,
			(SELECT COUNT(*) FROM salary_payments WHERE employee_id = @id) AS salary_payments,
			(SELECT COUNT(*) FROM salary_components sc
				JOIN salary_payments sp ON sp.id = sc.payment_id
				WHERE sp.employee_id = @id) AS salary_components,
			(SELECT COUNT(*) FROM salary_configs WHERE employee_id = @id) AS salary_configs
	`, sql.Named("id", id)).Scan(&c).Error
	return c, err
}

type purgeStep struct {
	query string
	count func(c *DependentCounts, n int64)
}

var purgeSteps = []purgeStep{
	{`DELETE FROM attendance_corrections WHERE employee_id = ?`, func(c *DependentCounts, n int64) { c.AttendanceCorrections = n }},
	{`DELETE FROM attendance WHERE employee_id = ?`, func(c *DependentCounts, n int64) { c.AttendanceRecords = n }},
	{`DELETE FROM face_encodings WHERE employee_id = ?`, func(c *DependentCounts, n int64) { c.FaceEncodings = n }},
	{`DELETE FROM notifications WHERE user_id = ?`, func(c *DependentCounts, n int64) { c.Notifications = n }},
	{`DELETE FROM salary_components WHERE payment_id IN (SELECT id FROM salary_payments WHERE employee_id = ?)`, func(c *DependentCounts, n int64) { c.SalaryComponents = n }},
	{`DELETE FROM salary_payments WHERE employee_id = ?`, func(c *DependentCounts, n int64) { c.SalaryPayments = n }},
	{`DELETE FROM salary_configs WHERE employee_id = ?`, func(c *DependentCounts, n int64) { c.SalaryConfigs = n }},
}

// Purge removes the employee and every dependent row. It must run inside a
// transaction (WithTx) so a failure leaves nothing half deleted.
func (r *repository) Purge(ctx context.Context, id int64) (DependentCounts, error) {
	var counts DependentCounts
	db := r.session(ctx)

	for _, step := range purgeSteps {
		res := db.Exec(step.query, id)
		if res.Error != nil {
			return DependentCounts{}, res.Error
		}
		step.count(&counts, res.RowsAffected)
	}

	res := db.Exec(`DELETE FROM employees WHERE id = ?`, id)
	if res.Error != nil {
		return DependentCounts{}, res.Error
	}
	if res.RowsAffected == 0 {
		return DependentCounts{}, gorm.ErrRecordNotFound
	}
	return counts, nil
}
