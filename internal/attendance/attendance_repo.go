package attendance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 100

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	InsertIfAbsent(ctx context.Context, a *Attendance) (bool, error)
	FindForDate(ctx context.Context, employeeID int64, date Date) (*Attendance, error)
	FindOpenForDate(ctx context.Context, employeeID int64, date Date) (*Attendance, error)
	FindByID(ctx context.Context, id int64) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	UpsertFull(ctx context.Context, a *Attendance) error
	DeleteForDate(ctx context.Context, employeeID int64, date Date) (int64, error)
	CreateCorrection(ctx context.Context, c *Correction) error
	ListCorrections(ctx context.Context, attendanceID int64) ([]Correction, error)
	FindAll(ctx context.Context, scope domain.Scope, filter AttendanceFilter) ([]AttendanceRow, error)
	DailyCounts(ctx context.Context, date Date) (DailyCounts, error)
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

// InsertIfAbsent reports false when a row for (employee, date) already exists.
func (r *repository) InsertIfAbsent(ctx context.Context, a *Attendance) (bool, error) {
	res := r.session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "record_date"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FindForDate(ctx context.Context, employeeID int64, date Date) (*Attendance, error) {
	var a Attendance
	err := r.session(ctx).
		Where("employee_id = ? AND record_date = ?", employeeID, date).
		Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindOpenForDate(ctx context.Context, employeeID int64, date Date) (*Attendance, error) {
	var a Attendance
	err := r.session(ctx).
		Where("employee_id = ? AND record_date = ?", employeeID, date).
		Where("check_in_time IS NOT NULL AND check_out_time IS NULL").
		Order("check_in_time DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Attendance, error) {
	var a Attendance
	if err := r.session(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.session(ctx).Save(a).Error
}

// UpsertFull writes a complete check-in/check-out pair, replacing any
// existing row for the same employee and day. a is refreshed from the stored
// row, so an overwrite keeps the original id and created_at.
func (r *repository) UpsertFull(ctx context.Context, a *Attendance) error {
	return r.session(ctx).
		Clauses(clause.Returning{}, clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "record_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"check_in_time", "check_out_time", "hours_worked", "status",
				"verification_method", "notes", "shift_name", "updated_at",
			}),
		}).
		Create(a).Error
}

func (r *repository) DeleteForDate(ctx context.Context, employeeID int64, date Date) (int64, error) {
	s := r.session(ctx)
	err := s.Exec(
		`DELETE FROM attendance_corrections
		 WHERE attendance_id IN (SELECT id FROM attendance WHERE employee_id = ? AND record_date = ?)`,
		employeeID, date,
	).Error
	if err != nil {
		return 0, err
	}

	res := r.session(ctx).
		Where("employee_id = ? AND record_date = ?", employeeID, date).
		Delete(&Attendance{})
	return res.RowsAffected, res.Error
}

func (r *repository) CreateCorrection(ctx context.Context, c *Correction) error {
	return r.session(ctx).Create(c).Error
}

func (r *repository) ListCorrections(ctx context.Context, attendanceID int64) ([]Correction, error) {
	var rows []Correction
	err := r.session(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, scope domain.Scope, filter AttendanceFilter) ([]AttendanceRow, error) {
	q := r.session(ctx).
		Table("attendance AS a").
		Select("a.*, e.employee_id AS employee_code, e.first_name, e.last_name, e.department").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Scopes(rbac.ScopeFilter(scope, "a.employee_id", "e.department"))

	if filter.Date != "" {
		q = q.Where("a.record_date = ?", filter.Date)
	}
	if filter.StartDate != "" {
		q = q.Where("a.record_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("a.record_date <= ?", filter.EndDate)
	}
	if filter.Status != "" {
		q = q.Where("a.status = ?", filter.Status)
	}
	if filter.EmployeeID > 0 {
		q = q.Where("a.employee_id = ?", filter.EmployeeID)
	}
	if filter.EmployeeCode != "" {
		q = q.Where("e.employee_id = ?", filter.EmployeeCode)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var rows []AttendanceRow
	err := q.Order("a.record_date DESC, a.check_in_time DESC NULLS LAST").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) DailyCounts(ctx context.Context, date Date) (DailyCounts, error) {
	var c DailyCounts
	err := r.session(ctx).Raw(`
SELECT
	(SELECT COUNT(*) FROM employees WHERE is_active = true) AS total_employees,
	COUNT(DISTINCT employee_id) FILTER (WHERE check_in_time IS NOT NULL) AS present,
	COUNT(DISTINCT employee_id) FILTER (WHERE check_out_time IS NOT NULL) AS checked_out,
	COUNT(DISTINCT employee_id) FILTER (WHERE status = 'late') AS late
FROM attendance
WHERE record_date = ?`, date).Scan(&c).Error
	return c, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
