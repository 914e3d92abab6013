package auth

import "testing"

func TestCan(t *testing.T) {
	employee := Actor{UserID: "e1", Role: RoleEmployee}
	hr := Actor{UserID: "h1", Role: RoleHR}
	admin := Actor{UserID: "a1", Role: RoleAdmin}
	own := Target{OwnerID: "e1"}
	other := Target{OwnerID: "e2"}

	cases := []struct {
		name   string
		actor  Actor
		action Action
		target Target
		want   bool
	}{
		{"employee reads own leave", employee, ActionLeaveRead, own, true},
		{"employee reads other leave", employee, ActionLeaveRead, other, false},
		{"employee lists all leave", employee, ActionLeaveRead, Target{}, false},
		{"employee decides leave", employee, ActionLeaveDecide, own, false},
		{"employee deletes own leave", employee, ActionLeaveDelete, own, true},
		{"employee reads own balance", employee, ActionBalanceRead, own, true},
		{"employee reads other balance", employee, ActionBalanceRead, other, false},
		{"employee manages attendance", employee, ActionAttendanceManage, own, false},
		{"employee sees dashboard", employee, ActionReportsRead, Target{}, true},
		{"employee reassigns self", employee, ActionEmployeesAssign, own, false},
		{"hr decides leave", hr, ActionLeaveDecide, other, true},
		{"hr reads any balance", hr, ActionBalanceRead, other, true},
		{"hr deletes payroll", hr, ActionPayrollDelete, other, false},
		{"hr deletes employee", hr, ActionEmployeesDelete, other, false},
		{"admin deletes payroll", admin, ActionPayrollDelete, other, true},
		{"admin reads audit", admin, ActionAuditRead, Target{}, true},
		{"anonymous", Actor{Role: RoleAdmin}, ActionLeaveRead, Target{}, false},
		{"unknown role", Actor{UserID: "x", Role: "owner"}, ActionLeaveRead, Target{OwnerID: "x"}, false},
	}
	for _, tc := range cases {
		if got := Can(tc.actor, tc.action, tc.target); got != tc.want {
			t.Fatalf("%s: Can = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{"employee", "HR", " admin "} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if ValidRole("manager") {
		t.Fatal("expected manager to be invalid")
	}
}
