// Package payrolltest provides an in-memory payroll store for tests.
package payrolltest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"dayflow/internal/domain/payroll"
)

type key struct {
	employeeID  string
	month, year int
}

type MemoryStore struct {
	mu      sync.Mutex
	codes   map[string]string
	names   map[string]string
	records map[string]payroll.Record
	seq     int
}

var _ payroll.StoreAPI = (*MemoryStore)(nil)

func New() *MemoryStore {
	return &MemoryStore{
		codes:   map[string]string{},
		names:   map[string]string{},
		records: map[string]payroll.Record{},
	}
}

func (m *MemoryStore) AddEmployee(id, code, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[code] = id
	m.names[id] = name
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MemoryStore) hydrate(r payroll.Record) payroll.Record {
	for code, id := range m.codes {
		if id == r.EmployeeID {
			r.EmployeeCode = code
		}
	}
	r.EmployeeName = m.names[r.EmployeeID]
	return r
}

func (m *MemoryStore) EmployeeIDByCode(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.codes[code]
	if !ok {
		return "", payroll.ErrEmployeeNotFound
	}
	return id, nil
}

func (m *MemoryStore) Upsert(_ context.Context, r payroll.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{r.EmployeeID, r.Month, r.Year}
	for id, existing := range m.records {
		if (key{existing.EmployeeID, existing.Month, existing.Year}) == k {
			existing.BasicSalary = r.BasicSalary
			existing.Allowances = r.Allowances
			existing.Deductions = r.Deductions
			existing.NetSalary = r.NetSalary
			existing.UpdatedAt = time.Now()
			m.records[id] = existing
			return id, nil
		}
	}
	m.seq++
	r.ID = "pay-" + strconv.Itoa(m.seq)
	r.Status = payroll.StatusPending
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.records[r.ID] = r
	return r.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return m.hydrate(r), nil
}

func (m *MemoryStore) Update(_ context.Context, r payroll.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; !ok {
		return payroll.ErrRecordNotFound
	}
	for id, existing := range m.records {
		if id != r.ID && existing.EmployeeID == r.EmployeeID && existing.Month == r.Month && existing.Year == r.Year {
			return payroll.ErrDuplicatePeriod
		}
	}
	r.UpdatedAt = time.Now()
	m.records[r.ID] = r
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return payroll.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) List(_ context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []payroll.Record{}
	for _, r := range m.records {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Month != 0 && r.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && r.Year != filter.Year {
			continue
		}
		out = append(out, m.hydrate(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}
