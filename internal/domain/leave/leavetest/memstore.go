// Package leavetest provides an in-memory leave store for tests.
package leavetest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"dayflow/internal/domain/leave"
)

type employee struct {
	id   string
	code string
	name string
}

type state struct {
	balances map[string]leave.Balance
	requests map[string]leave.Request
}

func (s state) clone() state {
	out := state{
		balances: make(map[string]leave.Balance, len(s.balances)),
		requests: make(map[string]leave.Request, len(s.requests)),
	}
	for k, v := range s.balances {
		out.balances[k] = v
	}
	for k, v := range s.requests {
		out.requests[k] = v
	}
	return out
}

// MemoryStore implements leave.StoreAPI. Transactions are serialised and
// rolled back by restoring a snapshot.
type MemoryStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	employees map[string]employee
	byCode    map[string]string
	data      state
	seq       int

	// BalanceReads counts ledger reads and creations, for asserting that
	// unpaid leave never touches the ledger.
	BalanceReads int
}

var _ leave.StoreAPI = (*MemoryStore)(nil)

func New() *MemoryStore {
	return &MemoryStore{
		employees: map[string]employee{},
		byCode:    map[string]string{},
		data:      state{balances: map[string]leave.Balance{}, requests: map[string]leave.Request{}},
	}
}

func (m *MemoryStore) AddEmployee(id, code, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[id] = employee{id: id, code: code, name: name}
	m.byCode[code] = id
}

// SetBalance replaces an employee's ledger.
func (m *MemoryStore) SetBalance(b leave.Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.balances[b.EmployeeID] = b
}

// PeekBalance returns the stored ledger without counting as a read.
func (m *MemoryStore) PeekBalance(employeeID string) (leave.Balance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data.balances[employeeID]
	return b, ok
}

func (m *MemoryStore) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data.requests)
}

func (m *MemoryStore) WithinTx(ctx context.Context, fn func(leave.StoreAPI) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.data.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.data = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemoryStore) EmployeeIDByCode(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byCode[code]
	if !ok {
		return "", leave.ErrEmployeeNotFound
	}
	return id, nil
}

func (m *MemoryStore) GetOrCreateBalance(_ context.Context, employeeID string) (leave.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BalanceReads++
	if _, ok := m.employees[employeeID]; !ok {
		return leave.Balance{}, leave.ErrEmployeeNotFound
	}
	b, ok := m.data.balances[employeeID]
	if !ok {
		b = leave.DefaultBalance(employeeID)
		m.data.balances[employeeID] = b
	}
	return b, nil
}

func (m *MemoryStore) ReserveDays(_ context.Context, employeeID string, c leave.Category, days int, guard bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data.balances[employeeID]
	if !ok {
		return leave.ErrEmployeeNotFound
	}
	if err := b.Reserve(c, days, guard); err != nil {
		return err
	}
	m.data.balances[employeeID] = b
	return nil
}

func (m *MemoryStore) ReleaseDays(_ context.Context, employeeID string, c leave.Category, days int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data.balances[employeeID]
	if !ok {
		return nil
	}
	if err := b.Release(c, days); err != nil {
		return err
	}
	m.data.balances[employeeID] = b
	return nil
}

func (m *MemoryStore) CreateRequest(_ context.Context, r leave.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[r.EmployeeID]; !ok {
		return "", leave.ErrEmployeeNotFound
	}
	m.seq++
	r.ID = "req-" + strconv.Itoa(m.seq)
	r.AppliedOn = time.Now().UTC().Add(time.Duration(m.seq) * time.Millisecond)
	m.data.requests[r.ID] = r
	return r.ID, nil
}

func (m *MemoryStore) hydrate(r leave.Request) leave.Request {
	if e, ok := m.employees[r.EmployeeID]; ok {
		r.EmployeeCode = e.code
		r.EmployeeName = e.name
	}
	if r.ReviewerID != nil {
		if e, ok := m.employees[*r.ReviewerID]; ok {
			name := e.name
			r.ReviewerName = &name
		}
	}
	return r
}

func (m *MemoryStore) GetRequest(_ context.Context, id string) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return m.hydrate(r), nil
}

func (m *MemoryStore) LockRequest(ctx context.Context, id string) (leave.Request, error) {
	return m.GetRequest(ctx, id)
}

func (m *MemoryStore) UpdateDecision(_ context.Context, id string, status leave.Status, reviewerID string, comments *string, reviewedOn time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	r.Status = status
	r.ReviewerID = &reviewerID
	r.ReviewedOn = &reviewedOn
	if comments != nil {
		r.Comments = comments
	}
	m.data.requests[id] = r
	return nil
}

func (m *MemoryStore) UpdateComments(_ context.Context, id string, comments *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if comments != nil {
		r.Comments = comments
	}
	m.data.requests[id] = r
	return nil
}

func (m *MemoryStore) DeleteRequest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.requests[id]; !ok {
		return leave.ErrRequestNotFound
	}
	delete(m.data.requests, id)
	return nil
}

func (m *MemoryStore) ListRequests(_ context.Context, filter leave.Filter) ([]leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.Request
	for _, r := range m.data.requests {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, m.hydrate(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedOn.After(out[j].AppliedOn) })
	return out, nil
}
