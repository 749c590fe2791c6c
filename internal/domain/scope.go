package domain

const (
	ScopeAll        = "all"
	ScopeDepartment = "department"
	ScopeSelf       = "self"
	ScopeNone       = "none"
)

// Scope narrows a read to the rows the actor may see.
type Scope struct {
	Kind       string `json:"kind"`
	EmployeeID int64  `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
}

func ScopeFor(kind string, actor Actor) Scope {
	switch kind {
	case ScopeAll:
		return Scope{Kind: ScopeAll}
	case ScopeDepartment:
		return Scope{Kind: ScopeDepartment, Department: actor.Department, EmployeeID: actor.ID}
	case ScopeSelf:
		return Scope{Kind: ScopeSelf, EmployeeID: actor.ID}
	default:
		return Scope{Kind: ScopeNone}
	}
}

// Allows reports whether a row owned by employeeID in department is visible.
func (s Scope) Allows(employeeID int64, department string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return department != "" && department == s.Department
	case ScopeSelf:
		return employeeID == s.EmployeeID
	default:
		return false
	}
}
