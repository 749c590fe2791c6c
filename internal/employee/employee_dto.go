package employee

type CreateEmployeeRequest struct {
	FirstName  string `json:"firstName" binding:"required,max=100"`
	LastName   string `json:"lastName" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	CIN        string `json:"cin" binding:"omitempty,max=20"`
	CNSSNumber string `json:"cnssNumber" binding:"omitempty,max=30"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
	Department string `json:"department" binding:"omitempty,max=100"`
	Position   string `json:"position" binding:"omitempty,max=100"`
	Role       string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	HireDate   string `json:"hireDate" binding:"omitempty,datetime=2006-01-02"`
	Password   string `json:"password" binding:"omitempty,min=6"`
}

type UpdateEmployeeRequest struct {
	FirstName      *string `json:"firstName" binding:"omitempty,max=100"`
	LastName       *string `json:"lastName" binding:"omitempty,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	CIN            *string `json:"cin" binding:"omitempty,max=20"`
	CNSSNumber     *string `json:"cnssNumber" binding:"omitempty,max=30"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	Department     *string `json:"department" binding:"omitempty,max=100"`
	Position       *string `json:"position" binding:"omitempty,max=100"`
	Role           *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	HireDate       *string `json:"hireDate" binding:"omitempty,datetime=2006-01-02"`
	FaceRegistered *bool   `json:"faceRegistered"`
}

type EmployeeFilter struct {
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search     string `form:"search"`
}

type HardDeleteRequest struct {
	ConfirmationToken string `json:"confirmationToken"`
}

type EmployeeResponse struct {
	ID             int64   `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	CIN            *string `json:"cin,omitempty"`
	CNSSNumber     *string `json:"cnssNumber,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Department     string  `json:"department,omitempty"`
	Position       string  `json:"position,omitempty"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"isActive"`
	Status         string  `json:"status"`
	FaceRegistered bool    `json:"faceRegistered"`
	HireDate       string  `json:"hireDate,omitempty"`
}

type CreateEmployeeResponse struct {
	EmployeeResponse
	DefaultPassword string `json:"defaultPassword,omitempty"`
}

type EmployeeOption struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Department string `json:"department,omitempty"`
}

type HardDeleteConfirmation struct {
	EmployeeID        int64           `json:"employeeId"`
	FullName          string          `json:"fullName"`
	ConfirmationToken string          `json:"confirmationToken"`
	ExpiresInSeconds  int             `json:"expiresInSeconds"`
	WillDelete        DependentCounts `json:"willDelete"`
}

type HardDeleteResult struct {
	EmployeeID int64           `json:"employeeId"`
	Deleted    DependentCounts `json:"deleted"`
}
