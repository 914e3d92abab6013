package reportshandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/attendance/attendancetest"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/reports"
	reportshandler "dayflow/internal/transport/http/handlers/reports"
	"dayflow/internal/transport/http/middleware"
)

const secret = "reports-handler-secret"

type counts struct{}

func (counts) CountEmployees(context.Context) (int, error) { return 7, nil }

func (counts) CountPresent(context.Context, time.Time) (int, error) { return 5, nil }

func (counts) CountOnLeave(context.Context, time.Time) (int, error) { return 1, nil }

func (counts) CountPendingLeave(context.Context) (int, error) { return 2, nil }

func setup(t *testing.T) http.Handler {
	t.Helper()
	store := attendancetest.New()
	store.AddEmployee("emp-1", "EMP001", "Ana Silva")
	svc := attendance.NewService(store, attendance.OvernightReject)
	checkIn, checkOut := "09:00", "17:30"
	_, err := svc.Upsert(context.Background(), auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}, attendance.UpsertInput{
		Date: time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), CheckIn: &checkIn, CheckOut: &checkOut, Status: "present",
	})
	require.NoError(t, err)

	h := reportshandler.NewHandler(reports.NewService(counts{}, svc))
	h.Now = func() time.Time { return time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Use(middleware.Auth(secret))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		h.RegisterRoutes(r)
	})
	return r
}

func get(t *testing.T, h http.Handler, role, path string) *httptest.ResponseRecorder {
	t.Helper()
	tok, err := auth.GenerateToken(secret, auth.Claims{UserID: role + "-1", Role: role}, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboardStats(t *testing.T) {
	h := setup(t)

	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	rec := get(t, h, auth.RoleHR, "/dashboard/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, map[string]int{"totalEmployees": 7, "presentToday": 5, "onLeave": 1, "pendingApprovals": 2}, env.Data)

	rec = get(t, h, auth.RoleEmployee, "/dashboard/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data["totalEmployees"])
	assert.Equal(t, 0, env.Data["pendingApprovals"])
}

func TestAttendanceExport(t *testing.T) {
	h := setup(t)

	rec := get(t, h, auth.RoleEmployee, "/reports/attendance.xlsx")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(t, h, auth.RoleHR, "/reports/attendance.xlsx?startDate=2026-04-01&endDate=2026-04-30")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-20260414.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EMP001", rows[1][0])

	rec = get(t, h, auth.RoleHR, "/reports/attendance.xlsx?startDate=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
