// Package employeestest provides an in-memory account store for tests. It
// also answers credential lookups so login can be exercised without a database.
package employeestest

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employees"
)

type account struct {
	emp  employees.Employee
	hash string
}

type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]account
	seq      int
}

var (
	_ employees.StoreAPI   = (*MemoryStore)(nil)
	_ auth.CredentialStore = (*MemoryStore)(nil)
)

func New() *MemoryStore {
	return &MemoryStore{accounts: map[string]account{}}
}

// Seed inserts an account directly, hashing password.
func (m *MemoryStore) Seed(t testing.TB, emp employees.Employee, password string) employees.Employee {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	created, err := m.Create(context.Background(), emp, hash)
	if err != nil {
		t.Fatalf("seed %s: %v", emp.Email, err)
	}
	return created
}

func (m *MemoryStore) List(_ context.Context) ([]employees.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]employees.Employee, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a.emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (employees.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return employees.Employee{}, employees.ErrNotFound
	}
	return a.emp, nil
}

func (m *MemoryStore) Create(_ context.Context, emp employees.Employee, passwordHash string) (employees.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.emp.Email, emp.Email) || a.emp.EmployeeCode == emp.EmployeeCode {
			return employees.Employee{}, employees.ErrDuplicate
		}
	}
	if emp.ID == "" {
		m.seq++
		emp.ID = "user-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	emp.CreatedAt, emp.UpdatedAt = now, now
	m.accounts[emp.ID] = account{emp: emp, hash: passwordHash}
	return emp, nil
}

func (m *MemoryStore) Update(_ context.Context, emp employees.Employee, passwordHash *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[emp.ID]
	if !ok {
		return employees.ErrNotFound
	}
	emp.UpdatedAt = time.Now().UTC()
	a.emp = emp
	if passwordHash != nil {
		a.hash = *passwordHash
	}
	m.accounts[emp.ID] = a
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return employees.ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MemoryStore) CredentialsByEmail(_ context.Context, email string) (auth.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range m.accounts {
		if a.emp.Email == email {
			return auth.Credentials{
				UserID:       a.emp.ID,
				EmployeeCode: a.emp.EmployeeCode,
				Role:         a.emp.Role,
				PasswordHash: a.hash,
			}, nil
		}
	}
	return auth.Credentials{}, auth.ErrInvalidCredentials
}
