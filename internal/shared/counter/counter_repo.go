package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const EmployeeCode = "employee_code"

type sequence struct {
	table  string
	column string
	prefix string
}

var sequences = map[string]sequence{
	EmployeeCode: {table: "employees", column: "employee_id", prefix: "EMP"},
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue returns the highest numeric suffix in use for counterType plus one.
// Codes that do not match PREFIX + digits are ignored.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	seq, ok := sequences[counterType]
	if !ok {
		return 0, fmt.Errorf("unknown counter type %q", counterType)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(%[1]s FROM %[3]d) AS BIGINT)), 0) + 1
		FROM %[2]s
		WHERE %[1]s ~ '^%[4]s[0-9]+$'
	`, seq.column, seq.table, len(seq.prefix)+1, seq.prefix)

	var nextValue int64
	if err := r.db.WithContext(ctx).Raw(query).Scan(&nextValue).Error; err != nil {
		return 0, err
	}
	return nextValue, nil
}

// FormatEmployeeCode renders n as EMP001, EMP002, ... EMP1000.
func FormatEmployeeCode(n int64) string {
	return fmt.Sprintf("EMP%03d", n)
}
