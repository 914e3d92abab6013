package auth

type Action string

const (
	ActionEmployeesList   Action = "employees.list"
	ActionEmployeesRead   Action = "employees.read"
	ActionEmployeesCreate Action = "employees.create"
	ActionEmployeesUpdate Action = "employees.update"
	ActionEmployeesAssign Action = "employees.assign"
	ActionEmployeesDelete Action = "employees.delete"

	ActionLeaveRead   Action = "leave.read"
	ActionLeaveCreate Action = "leave.create"
	ActionLeaveDecide Action = "leave.decide"
	ActionLeaveDelete Action = "leave.delete"
	ActionBalanceRead Action = "leave.balance.read"

	ActionAttendanceRead   Action = "attendance.read"
	ActionAttendanceWrite  Action = "attendance.write"
	ActionAttendanceManage Action = "attendance.manage"

	ActionPayrollRead   Action = "payroll.read"
	ActionPayrollWrite  Action = "payroll.write"
	ActionPayrollDelete Action = "payroll.delete"

	ActionReportsRead   Action = "reports.read"
	ActionReportsExport Action = "reports.export"
	ActionAuditRead     Action = "audit.read"
)

// Target describes what an action is applied to. A zero Target means the
// action addresses the whole collection rather than one employee's data.
type Target struct {
	OwnerID string
}

type grants struct {
	any []Action
	own []Action
}

var selfService = []Action{
	ActionEmployeesRead,
	ActionEmployeesUpdate,
	ActionLeaveRead,
	ActionLeaveCreate,
	ActionLeaveDelete,
	ActionBalanceRead,
	ActionAttendanceRead,
	ActionAttendanceWrite,
	ActionPayrollRead,
}

var hrActions = []Action{
	ActionEmployeesList,
	ActionEmployeesRead,
	ActionEmployeesCreate,
	ActionEmployeesUpdate,
	ActionEmployeesAssign,
	ActionLeaveRead,
	ActionLeaveCreate,
	ActionLeaveDecide,
	ActionLeaveDelete,
	ActionBalanceRead,
	ActionAttendanceRead,
	ActionAttendanceWrite,
	ActionAttendanceManage,
	ActionPayrollRead,
	ActionPayrollWrite,
	ActionReportsRead,
	ActionReportsExport,
}

// RoleGrants lists, per role, the actions allowed on any target and the
// actions allowed only on the actor's own data.
var RoleGrants = map[string]grants{
	RoleEmployee: {any: []Action{ActionReportsRead}, own: selfService},
	RoleHR:       {any: hrActions},
	RoleAdmin: {any: append(append([]Action{}, hrActions...),
		ActionEmployeesDelete,
		ActionPayrollDelete,
		ActionAuditRead,
	)},
}

// Can is the single authorization decision point for every operation.
func Can(actor Actor, action Action, target Target) bool {
	if actor.UserID == "" {
		return false
	}
	g, ok := RoleGrants[actor.Role]
	if !ok {
		return false
	}
	if contains(g.any, action) {
		return true
	}
	return target.OwnerID != "" && target.OwnerID == actor.UserID && contains(g.own, action)
}

func contains(actions []Action, action Action) bool {
	for _, candidate := range actions {
		if candidate == action {
			return true
		}
	}
	return false
}
