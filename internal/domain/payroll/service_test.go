package payroll_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/apperrors"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/domain/payroll/payrolltest"
)

var (
	employee = auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	other    = auth.Actor{UserID: "emp-2", Role: auth.RoleEmployee}
	hr       = auth.Actor{UserID: "hr-1", Role: auth.RoleHR}
	admin    = auth.Actor{UserID: "adm-1", Role: auth.RoleAdmin}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func setup(t *testing.T) (*payroll.Service, *payrolltest.MemoryStore) {
	t.Helper()
	store := payrolltest.New()
	store.AddEmployee("emp-1", "EMP001", "Ana Silva")
	store.AddEmployee("emp-2", "EMP002", "Ben Okafor")
	return payroll.NewService(store, "EUR"), store
}

func TestUpsertComputesNetAndReplacesPeriod(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, hr, payroll.UpsertInput{
		EmployeeCode: "EMP001", Month: 3, Year: 2026,
		BasicSalary: dec("4000"), Allowances: decp("250.75"),
	})
	require.NoError(t, err)
	assert.True(t, first.NetSalary.Equal(dec("4250.75")))
	assert.True(t, first.Deductions.IsZero())
	assert.Equal(t, payroll.StatusPending, first.Status)
	assert.Equal(t, "EMP001", first.EmployeeCode)

	second, err := svc.Upsert(ctx, hr, payroll.UpsertInput{
		EmployeeCode: "EMP001", Month: 3, Year: 2026,
		BasicSalary: dec("4100"), Deductions: decp("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.NetSalary.Equal(dec("4000")))
	assert.Equal(t, 1, store.Len())
}

func TestUpsertValidation(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, employee, payroll.UpsertInput{EmployeeCode: "EMP001", Month: 1, Year: 2026, BasicSalary: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: "EMP001", Month: 13, Year: 2026, BasicSalary: dec("1")})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: "EMP001", Month: 1, Year: 2026, BasicSalary: dec("1"), Deductions: decp("-5")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: "EMP404", Month: 1, Year: 2026, BasicSalary: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, 0, store.Len())
}

func TestListScopesEmployees(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	for _, code := range []string{"EMP001", "EMP002"} {
		for month := 1; month <= 2; month++ {
			_, err := svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: code, Month: month, Year: 2026, BasicSalary: dec("1000")})
			require.NoError(t, err)
		}
	}

	own, err := svc.List(ctx, employee, "EMP002", 0, 0)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, r := range own {
		assert.Equal(t, "emp-1", r.EmployeeID)
	}
	assert.Equal(t, 2, own[0].Month)

	byCode, err := svc.List(ctx, hr, "EMP002", 1, 2026)
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "EMP002", byCode[0].EmployeeCode)

	unknown, err := svc.List(ctx, hr, "EMP404", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	all, err := svc.List(ctx, admin, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestGetAndPayslipOwnership(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	rec, err := svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: "EMP001", Month: 5, Year: 2026, BasicSalary: dec("2500")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, doc, err := svc.Payslip(ctx, employee, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	_, _, err = svc.Payslip(ctx, other, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Get(ctx, hr, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateRecomputesAndStampsPaid(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	rec, err := svc.Upsert(ctx, hr, payroll.UpsertInput{
		EmployeeCode: "EMP001", Month: 6, Year: 2026,
		BasicSalary: dec("3000"), Allowances: decp("200"), Deductions: decp("50"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, hr, rec.ID, payroll.UpdateInput{Deductions: decp("150.50")})
	require.NoError(t, err)
	assert.True(t, updated.NetSalary.Equal(dec("3049.5")), updated.NetSalary.String())

	paid := "paid"
	updated, err = svc.Update(ctx, hr, rec.ID, payroll.UpdateInput{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaidOn)

	bad := "void"
	_, err = svc.Update(ctx, hr, rec.ID, payroll.UpdateInput{Status: &bad})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatus)

	_, err = svc.Update(ctx, employee, rec.ID, payroll.UpdateInput{Status: &paid})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteAdminOnly(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	rec, err := svc.Upsert(ctx, hr, payroll.UpsertInput{EmployeeCode: "EMP001", Month: 7, Year: 2026, BasicSalary: dec("1")})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, hr, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	deleted, err := svc.Delete(ctx, admin, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, deleted.ID)
	assert.Equal(t, 0, store.Len())

	_, err = svc.Delete(ctx, admin, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
