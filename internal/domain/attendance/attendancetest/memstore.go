// Package attendancetest provides an in-memory attendance store for tests.
package attendancetest

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"dayflow/internal/domain/attendance"
)

type MemoryStore struct {
	mu      sync.Mutex
	codes   map[string]string
	names   map[string]string
	records map[string]attendance.Record
	seq     int
}

var _ attendance.StoreAPI = (*MemoryStore)(nil)

func New() *MemoryStore {
	return &MemoryStore{
		codes:   map[string]string{},
		names:   map[string]string{},
		records: map[string]attendance.Record{},
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

func (m *MemoryStore) codeOf(id string) string {
	for code, employeeID := range m.codes {
		if employeeID == id {
			return code
		}
	}
	return ""
}

func (m *MemoryStore) hydrate(r attendance.Record) attendance.Record {
	r.EmployeeCode = m.codeOf(r.EmployeeID)
	r.EmployeeName = m.names[r.EmployeeID]
	return r
}

func (m *MemoryStore) EmployeeIDByCode(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.codes[code]
	if !ok {
		return "", attendance.ErrEmployeeNotFound
	}
	return id, nil
}

func (m *MemoryStore) Upsert(_ context.Context, r attendance.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.records {
		if existing.EmployeeID == r.EmployeeID && existing.Date.Equal(r.Date) {
			r.ID = id
			m.records[id] = r
			return id, nil
		}
	}
	m.seq++
	r.ID = "att-" + strconv.Itoa(m.seq)
	m.records[r.ID] = r
	return r.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return m.hydrate(r), nil
}

func (m *MemoryStore) Update(_ context.Context, r attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	for id, existing := range m.records {
		if id != r.ID && existing.EmployeeID == r.EmployeeID && existing.Date.Equal(r.Date) {
			return attendance.ErrDuplicateDay
		}
	}
	m.records[r.ID] = r
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) List(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != nil && r.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.Date.After(*filter.To) {
			continue
		}
		out = append(out, m.hydrate(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
