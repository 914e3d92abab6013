package employeeshandler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employees"
	"dayflow/internal/domain/employees/employeestest"
	employeeshandler "dayflow/internal/transport/http/handlers/employees"
	"dayflow/internal/transport/http/middleware"
)

const secret = "users-handler-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

type fixture struct {
	h     http.Handler
	store *employeestest.MemoryStore
	emp   employees.Employee
	hr    employees.Employee
	admin employees.Employee
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := employeestest.New()
	f := fixture{store: store}
	f.emp = store.Seed(t, employees.Employee{Email: "ana@example.com", EmployeeCode: "EMP001", FirstName: "Ana", LastName: "Silva", Role: auth.RoleEmployee, Department: "Sales", Position: "Rep"}, "secret1")
	f.hr = store.Seed(t, employees.Employee{Email: "hana@example.com", EmployeeCode: "HR001", FirstName: "Hana", LastName: "Ito", Role: auth.RoleHR}, "secret1")
	f.admin = store.Seed(t, employees.Employee{Email: "root@example.com", EmployeeCode: "ADM001", FirstName: "System", LastName: "Admin", Role: auth.RoleAdmin}, "secret1")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(secret))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		employeeshandler.NewHandler(employees.NewService(store), nil).RegisterRoutes(r)
	})
	f.h = r
	return f
}

func (f fixture) call(t *testing.T, who employees.Employee, method, path string, body any) (int, envelope) {
	t.Helper()
	tok, err := auth.GenerateToken(secret, auth.Claims{UserID: who.ID, Role: who.Role, EmployeeCode: who.EmployeeCode}, time.Hour)
	require.NoError(t, err)
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec.Code, env
}

func TestListRequiresPrivilege(t *testing.T) {
	f := setup(t)

	status, _ := f.call(t, f.emp, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.call(t, f.hr, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, status)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 3)
	for _, u := range users {
		assert.NotContains(t, u, "password")
		assert.NotContains(t, u, "passwordHash")
	}
}

func TestCreateUser(t *testing.T) {
	f := setup(t)
	body := map[string]any{
		"email": "ben@example.com", "password": "secret1", "employeeId": "emp002",
		"firstName": "Ben", "lastName": "Okafor", "joinDate": "2026-01-05",
	}

	status, _ := f.call(t, f.emp, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.call(t, f.hr, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	var created employeeshandler.UserView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "emp002", created.EmployeeID)
	assert.Equal(t, auth.RoleEmployee, created.Role)
	assert.Equal(t, employees.DefaultDepartment, created.Department)
	assert.Equal(t, "2026-01-05", created.JoinDate)

	status, env = f.call(t, f.hr, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "duplicate", env.Code)
}

func TestCreateUserValidation(t *testing.T) {
	f := setup(t)

	status, env := f.call(t, f.hr, http.MethodPost, "/users", map[string]any{
		"email": "not-an-email", "password": "123", "employeeId": "EMP009", "firstName": "X", "lastName": "Y",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)
	assert.Equal(t, "email must be a valid email", env.Error)
	assert.Contains(t, string(env.Details), `"password"`)

	status, env = f.call(t, f.hr, http.MethodPost, "/users", map[string]any{
		"email": "x@example.com", "password": "secret1", "employeeId": "EMP009", "firstName": "X", "lastName": "Y", "role": "owner",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "role must be one of employee, hr, admin", env.Error)
}

func TestSelfServiceUpdate(t *testing.T) {
	f := setup(t)

	status, env := f.call(t, f.emp, http.MethodPut, "/users/"+f.emp.ID, map[string]any{"phone": "+351 555 0100"})
	require.Equal(t, http.StatusOK, status, env.Error)
	var updated employeeshandler.UserView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+351 555 0100", *updated.Phone)

	status, _ = f.call(t, f.emp, http.MethodPut, "/users/"+f.emp.ID, map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, status, "employees cannot promote themselves")

	status, _ = f.call(t, f.emp, http.MethodPut, "/users/"+f.hr.ID, map[string]any{"phone": "1"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = f.call(t, f.hr, http.MethodPut, "/users/"+f.emp.ID, map[string]any{"department": "Support", "position": "Lead"})
	require.Equal(t, http.StatusOK, status, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Support", updated.Department)
	assert.Equal(t, "Lead", updated.Position)
}

func TestGetAndDelete(t *testing.T) {
	f := setup(t)

	status, _ := f.call(t, f.emp, http.MethodGet, "/users/"+f.emp.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.call(t, f.emp, http.MethodGet, "/users/"+f.admin.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = f.call(t, f.hr, http.MethodGet, "/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.call(t, f.hr, http.MethodDelete, "/users/"+f.emp.ID, nil)
	assert.Equal(t, http.StatusForbidden, status, "only admins delete accounts")

	status, env := f.call(t, f.admin, http.MethodDelete, "/users/"+f.emp.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted successfully", env.Message)

	status, _ = f.call(t, f.admin, http.MethodGet, "/users/"+f.emp.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
