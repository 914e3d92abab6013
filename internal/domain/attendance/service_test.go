package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/apperrors"
	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/attendance/attendancetest"
	"dayflow/internal/domain/auth"
)

var (
	employee = auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	other    = auth.Actor{UserID: "emp-2", Role: auth.RoleEmployee}
	hr       = auth.Actor{UserID: "hr-1", Role: auth.RoleHR}
)

func strp(s string) *string { return &s }

func day(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }

func setup(policy attendance.OvernightPolicy) (*attendance.Service, *attendancetest.MemoryStore) {
	store := attendancetest.New()
	store.AddEmployee(employee.UserID, "EMP001", "Ana Silva")
	store.AddEmployee(other.UserID, "EMP002", "Ben Okafor")
	store.AddEmployee(hr.UserID, "HR001", "Hana Ito")
	return attendance.NewService(store, policy), store
}

func TestUpsertDerivesWorkHours(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)

	rec, err := svc.Upsert(context.Background(), employee, attendance.UpsertInput{
		Date:     day(5),
		CheckIn:  strp("09:00"),
		CheckOut: strp("17:30"),
		Status:   "present",
	})
	require.NoError(t, err)
	require.NotNil(t, rec.WorkHours)
	assert.Equal(t, 8.5, *rec.WorkHours)
	assert.Equal(t, "EMP001", rec.EmployeeCode)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestUpsertWithoutBothTimesLeavesHoursUnset(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)

	rec, err := svc.Upsert(context.Background(), employee, attendance.UpsertInput{
		Date:    day(5),
		CheckIn: strp("9:15"),
		Status:  "half_day",
	})
	require.NoError(t, err)
	assert.Nil(t, rec.WorkHours)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, "09:15", *rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
}

func TestUpsertReplacesSameDay(t *testing.T) {
	svc, store := setup(attendance.OvernightReject)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(6), CheckIn: strp("08:00"), Status: "present"})
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(6), CheckIn: strp("08:00"), CheckOut: strp("12:00"), Status: "half_day"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, attendance.StatusHalfDay, second.Status)
	assert.Equal(t, 4.0, *second.WorkHours)
}

func TestUpsertAcceptsInconsistentStatus(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)
	rec, err := svc.Upsert(context.Background(), employee, attendance.UpsertInput{
		Date: day(7), CheckIn: strp("09:00"), CheckOut: strp("10:00"), Status: "absent",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Equal(t, 1.0, *rec.WorkHours)
}

func TestUpsertOvernightPolicies(t *testing.T) {
	in := attendance.UpsertInput{Date: day(8), CheckIn: strp("09:00"), CheckOut: strp("08:00"), Status: "present"}

	svc, _ := setup(attendance.OvernightReject)
	_, err := svc.Upsert(context.Background(), employee, in)
	assert.ErrorIs(t, err, attendance.ErrOvernightShift)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	svc, _ = setup(attendance.OvernightNegative)
	rec, err := svc.Upsert(context.Background(), employee, in)
	require.NoError(t, err)
	assert.Equal(t, -1.0, *rec.WorkHours)

	svc, _ = setup(attendance.OvernightNextDay)
	rec, err = svc.Upsert(context.Background(), employee, in)
	require.NoError(t, err)
	assert.Equal(t, 23.0, *rec.WorkHours)
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(1), Status: "sleeping"})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	_, err = svc.Upsert(ctx, employee, attendance.UpsertInput{Status: "present"})
	assert.ErrorIs(t, err, attendance.ErrDateRequired)

	_, err = svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(1), CheckIn: strp("25:00"), Status: "present"})
	assert.ErrorIs(t, err, attendance.ErrInvalidTime)
}

func TestUpsertOnBehalf(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)
	ctx := context.Background()

	rec, err := svc.Upsert(ctx, hr, attendance.UpsertInput{EmployeeCode: "EMP002", Date: day(9), Status: "leave"})
	require.NoError(t, err)
	assert.Equal(t, other.UserID, rec.EmployeeID)

	rec, err = svc.Upsert(ctx, employee, attendance.UpsertInput{EmployeeCode: "EMP002", Date: day(9), Status: "present"})
	require.NoError(t, err)
	assert.Equal(t, employee.UserID, rec.EmployeeID)

	_, err = svc.Upsert(ctx, hr, attendance.UpsertInput{EmployeeCode: "NOPE", Date: day(9), Status: "present"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateMergesAndRecomputes(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)
	ctx := context.Background()

	rec, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(10), CheckIn: strp("09:00"), Status: "present"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, employee, rec.ID, attendance.UpdateInput{CheckOut: strp("18:00")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Update(ctx, hr, rec.ID, attendance.UpdateInput{CheckOut: strp("18:00")})
	require.NoError(t, err)
	require.NotNil(t, updated.WorkHours)
	assert.Equal(t, 9.0, *updated.WorkHours)
	assert.Equal(t, attendance.StatusPresent, updated.Status)

	updated, err = svc.Update(ctx, hr, rec.ID, attendance.UpdateInput{Status: strp("half_day")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, updated.Status)
	assert.Equal(t, 9.0, *updated.WorkHours)

	_, err = svc.Update(ctx, hr, "missing", attendance.UpdateInput{})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestDeleteIsPrivileged(t *testing.T) {
	svc, store := setup(attendance.OvernightReject)
	ctx := context.Background()

	rec, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(11), Status: "present"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, employee, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Delete(ctx, hr, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestListScoping(t *testing.T) {
	svc, _ := setup(attendance.OvernightReject)
	ctx := context.Background()

	for d := 1; d <= 3; d++ {
		_, err := svc.Upsert(ctx, employee, attendance.UpsertInput{Date: day(d), Status: "present"})
		require.NoError(t, err)
		_, err = svc.Upsert(ctx, other, attendance.UpsertInput{Date: day(d), Status: "present"})
		require.NoError(t, err)
	}

	mine, err := svc.List(ctx, employee, "EMP002", nil, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, r := range mine {
		assert.Equal(t, employee.UserID, r.EmployeeID)
	}
	assert.True(t, mine[0].Date.After(mine[1].Date))

	from, to := day(2), day(3)
	ranged, err := svc.List(ctx, hr, "", &from, &to)
	require.NoError(t, err)
	assert.Len(t, ranged, 4)

	theirs, err := svc.ListForEmployee(ctx, hr, "EMP002", nil, nil)
	require.NoError(t, err)
	assert.Len(t, theirs, 3)

	_, err = svc.ListForEmployee(ctx, employee, "EMP002", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
