package rbac

import "github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

// Resources guarded by the policy.
const (
	ResourceEmployee        = "employee"
	ResourceAttendance      = "attendance"
	ResourceAttendanceStats = "attendance_stats"
	ResourceSalary          = "salary"
	ResourcePayroll         = "payroll"
	ResourceNotification    = "notification"
	ResourceExport          = "export"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPurge  = "purge"
)

const ModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// DefaultPolicies is the (role, resource, action, scope) table.
// Attendance writes are admin only.
func DefaultPolicies() [][]string {
	admin, manager, employee := domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee
	all, dept, self := domain.ScopeAll, domain.ScopeDepartment, domain.ScopeSelf

	return [][]string{
		{admin, ResourceEmployee, "*", all},
		{admin, ResourceAttendance, "*", all},
		{admin, ResourceAttendanceStats, ActionRead, all},
		{admin, ResourceSalary, "*", all},
		{admin, ResourcePayroll, "*", all},
		{admin, ResourceNotification, "*", all},
		{admin, ResourceExport, ActionRead, all},

		{manager, ResourceEmployee, ActionRead, dept},
		{manager, ResourceEmployee, ActionCreate, dept},
		{manager, ResourceAttendance, ActionRead, dept},
		{manager, ResourceSalary, ActionRead, dept},
		{manager, ResourcePayroll, ActionRead, dept},
		{manager, ResourceNotification, ActionRead, dept},
		{manager, ResourceNotification, ActionUpdate, dept},
		{manager, ResourceExport, ActionRead, dept},

		{employee, ResourceEmployee, ActionRead, self},
		{employee, ResourceAttendance, ActionRead, self},
		{employee, ResourceSalary, ActionRead, self},
		{employee, ResourcePayroll, ActionRead, self},
		{employee, ResourceNotification, ActionRead, self},
		{employee, ResourceNotification, ActionUpdate, self},
		{employee, ResourceExport, ActionRead, self},
	}
}
