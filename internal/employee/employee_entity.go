package employee

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeCode   string     `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex:uq_employees_employee_id"`
	FirstName      string     `gorm:"column:first_name;type:varchar(100);not null"`
	LastName       string     `gorm:"column:last_name;type:varchar(100);not null"`
	Email          string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	CIN            *string    `gorm:"column:cin;type:varchar(20);uniqueIndex:uq_employees_cin"`
	CNSSNumber     *string    `gorm:"column:cnss_number;type:varchar(30);uniqueIndex:uq_employees_cnss"`
	Phone          string     `gorm:"column:phone;type:varchar(30)"`
	Department     string     `gorm:"column:department;type:varchar(100);index"`
	Position       string     `gorm:"column:position;type:varchar(100)"`
	Role           string     `gorm:"column:role;type:varchar(20);not null;default:employee"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:active"`
	PasswordHash   string     `gorm:"column:password_hash;type:varchar(255);not null"`
	FaceRegistered bool       `gorm:"column:face_registered;not null;default:false"`
	HireDate       *time.Time `gorm:"column:hire_date;type:date"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// DependentCounts lists the rows a permanent delete removes.
type DependentCounts struct {
	AttendanceRecords     int64 `json:"attendanceRecords"`
	AttendanceCorrections int64 `json:"attendanceCorrections"`
	FaceEncodings         int64 `json:"faceEncodings"`
	Notifications         int64 `json:"notifications"`
	SalaryPayments        int64 `json:"salaryPayments"`
	SalaryComponents      int64 `json:"salaryComponents"`
	SalaryConfigs         int64 `json:"salaryConfigs"`
}
