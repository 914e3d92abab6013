package authhandler_test

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

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employees"
	"dayflow/internal/domain/employees/employeestest"
	authhandler "dayflow/internal/transport/http/handlers/auth"
	"dayflow/internal/transport/http/middleware"
)

const secret = "auth-handler-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		EmployeeID string `json:"employeeId"`
		Role       string `json:"role"`
	} `json:"user"`
}

func newRouter(t *testing.T, allowSignup bool, throttle func(http.Handler) http.Handler) (http.Handler, *employeestest.MemoryStore) {
	t.Helper()
	store := employeestest.New()
	store.Seed(t, employees.Employee{
		Email: "ana@example.com", EmployeeCode: "EMP001", FirstName: "Ana", LastName: "Silva", Role: auth.RoleEmployee,
	}, "secret1")

	h := authhandler.NewHandler(auth.NewService(store, secret, time.Hour), employees.NewService(store), nil, allowSignup)
	h.Throttle = throttle

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(secret))
	h.RegisterRoutes(r)
	return r, store
}

func post(t *testing.T, h http.Handler, path string, body any, header http.Header) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec.Code, env
}

func TestLoginIssuesUsableToken(t *testing.T) {
	h, _ := newRouter(t, true, nil)

	status, env := post(t, h, "/auth/login", map[string]string{"email": "ANA@example.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var out session
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "EMP001", out.User.EmployeeID)

	claims, err := auth.ParseToken(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, auth.RoleEmployee, claims.Role)
	assert.Equal(t, "EMP001", claims.EmployeeCode)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newRouter(t, true, nil)

	status, env := post(t, h, "/auth/login", map[string]string{"email": "ana@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", env.Error)

	status, env = post(t, h, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "secret1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", env.Error, "unknown accounts look like wrong passwords")

	status, env = post(t, h, "/auth/login", map[string]string{"email": "ana@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)
}

func TestMeRequiresToken(t *testing.T) {
	h, _ := newRouter(t, true, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupCreatesEmployee(t *testing.T) {
	h, store := newRouter(t, true, nil)

	status, env := post(t, h, "/auth/signup", map[string]string{
		"email": "ben@example.com", "password": "secret1", "employeeId": "emp002", "firstName": "Ben", "lastName": "Okafor",
	}, nil)
	require.Equal(t, http.StatusCreated, status, env.Error)
	var out session
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, auth.RoleEmployee, out.User.Role)
	assert.Equal(t, "emp002", out.User.EmployeeID)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	status, env = post(t, h, "/auth/signup", map[string]string{
		"email": "ben@example.com", "password": "secret1", "employeeId": "EMP003", "firstName": "Ben", "lastName": "Okafor",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "duplicate", env.Code)
}

func TestSignupDisabled(t *testing.T) {
	h, _ := newRouter(t, false, nil)
	status, env := post(t, h, "/auth/signup", map[string]string{
		"email": "ben@example.com", "password": "secret1", "employeeId": "EMP002", "firstName": "Ben", "lastName": "Okafor",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "signup_disabled", env.Code)
}

func TestLoginIsThrottled(t *testing.T) {
	h, _ := newRouter(t, true, middleware.AuthRateLimit(4, time.Minute))
	header := http.Header{"X-Forwarded-For": []string{"203.0.113.7"}}

	status, _ := post(t, h, "/auth/login", map[string]string{"email": "ana@example.com", "password": "wrong"}, header)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, env := post(t, h, "/auth/login", map[string]string{"email": "ana@example.com", "password": "secret1"}, header)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", env.Code)
}
