package leave

import (
	"context"
	"strings"
	"time"

	"dayflow/internal/domain/auth"
)

// Recorder receives ledger and decision events for metrics.
type Recorder interface {
	LeaveDecided(status string)
	InsufficientBalance(category string)
}

type noopRecorder struct{}

func (noopRecorder) LeaveDecided(string)        {}
func (noopRecorder) InsufficientBalance(string) {}

type Options struct {
	// RevalidateOnApproval guards the approval reservation against the
	// current balance inside the decision transaction.
	RevalidateOnApproval bool
	// RestoreOnDelete releases reserved days when an approved request is deleted.
	RestoreOnDelete bool
	Recorder        Recorder
}

type Service struct {
	store StoreAPI
	opts  Options
	now   func() time.Time
}

func NewService(store StoreAPI, opts Options) *Service {
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}
	return &Service{store: store, opts: opts, now: time.Now}
}

// Create files a pending request for the actor, or for EmployeeCode when the
// actor is privileged. Paid categories must fit in the current balance.
func (s *Service) Create(ctx context.Context, actor auth.Actor, in CreateInput) (Request, error) {
	category, ok := ParseCategory(in.Category)
	if !ok {
		return Request{}, ErrInvalidCategory
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return Request{}, ErrReasonRequired
	}
	days, err := CalculateDays(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}

	employeeID := actor.UserID
	if code := strings.TrimSpace(in.EmployeeCode); code != "" && actor.Privileged() {
		employeeID, err = s.store.EmployeeIDByCode(ctx, code)
		if err != nil {
			return Request{}, err
		}
	}
	if !auth.Can(actor, auth.ActionLeaveCreate, auth.Target{OwnerID: employeeID}) {
		return Request{}, ErrForbidden
	}

	var id string
	err = s.store.WithinTx(ctx, func(tx StoreAPI) error {
		if category.Tracked() {
			balance, err := tx.GetOrCreateBalance(ctx, employeeID)
			if err != nil {
				return err
			}
			available, err := balance.Available(category)
			if err != nil {
				return err
			}
			if available < days {
				s.opts.Recorder.InsufficientBalance(string(category))
				return insufficient(category)
			}
		}
		newID, err := tx.CreateRequest(ctx, Request{
			EmployeeID: employeeID,
			Category:   category,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Days:       days,
			Reason:     reason,
			Status:     StatusPending,
		})
		id = newID
		return err
	})
	if err != nil {
		return Request{}, err
	}
	return s.store.GetRequest(ctx, id)
}

// Decide applies a reviewer decision to a pending request. Approving a paid
// category reserves the request's days in the same transaction.
func (s *Service) Decide(ctx context.Context, actor auth.Actor, id string, in DecideInput) (Request, error) {
	if !auth.Can(actor, auth.ActionLeaveDecide, auth.Target{}) {
		return Request{}, ErrForbidden
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return Request{}, ErrInvalidStatus
	}

	err := s.store.WithinTx(ctx, func(tx StoreAPI) error {
		req, err := tx.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		if req.Status.Terminal() {
			return ErrInvalidTransition
		}
		if status == StatusPending {
			return tx.UpdateComments(ctx, id, in.Comments)
		}
		if status == StatusApproved && req.Category.Tracked() {
			if _, err := tx.GetOrCreateBalance(ctx, req.EmployeeID); err != nil {
				return err
			}
			if err := tx.ReserveDays(ctx, req.EmployeeID, req.Category, req.Days, s.opts.RevalidateOnApproval); err != nil {
				if isInsufficient(err) {
					s.opts.Recorder.InsufficientBalance(string(req.Category))
				}
				return err
			}
		}
		return tx.UpdateDecision(ctx, id, status, actor.UserID, in.Comments, s.now().UTC())
	})
	if err != nil {
		return Request{}, err
	}
	if status != StatusPending {
		s.opts.Recorder.LeaveDecided(string(status))
	}
	return s.store.GetRequest(ctx, id)
}

// Delete removes a request. Owners may only delete while it is pending;
// privileged actors may delete in any state.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) (Request, error) {
	var deleted Request
	err := s.store.WithinTx(ctx, func(tx StoreAPI) error {
		req, err := tx.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		if !auth.Can(actor, auth.ActionLeaveDelete, auth.Target{OwnerID: req.EmployeeID}) {
			return ErrForbidden
		}
		if !actor.Privileged() && req.Status != StatusPending {
			return ErrNotPending
		}
		if req.Status == StatusApproved && req.Category.Tracked() && s.opts.RestoreOnDelete {
			if err := tx.ReleaseDays(ctx, req.EmployeeID, req.Category, req.Days); err != nil {
				return err
			}
		}
		deleted = req
		return tx.DeleteRequest(ctx, id)
	})
	return deleted, err
}

// List returns requests newest first. Callers without collection access only
// ever see their own requests.
func (s *Service) List(ctx context.Context, actor auth.Actor, employeeCode, status string) ([]Request, error) {
	filter := Filter{}
	if status = strings.TrimSpace(status); status != "" {
		parsed, ok := ParseStatus(status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter.Status = parsed
	}

	switch {
	case !auth.Can(actor, auth.ActionLeaveRead, auth.Target{}):
		filter.EmployeeID = actor.UserID
	case strings.TrimSpace(employeeCode) != "":
		id, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(employeeCode))
		if err != nil {
			if isNotFound(err) {
				return []Request{}, nil
			}
			return nil, err
		}
		filter.EmployeeID = id
	}

	out, err := s.store.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Request{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (Request, error) {
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if !auth.Can(actor, auth.ActionLeaveRead, auth.Target{OwnerID: req.EmployeeID}) {
		return Request{}, ErrForbidden
	}
	return req, nil
}

// Balance reads an employee's ledger, creating the default one on first access.
func (s *Service) Balance(ctx context.Context, actor auth.Actor, employeeCode string) (Balance, error) {
	employeeID, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(employeeCode))
	if err != nil {
		return Balance{}, err
	}
	if !auth.Can(actor, auth.ActionBalanceRead, auth.Target{OwnerID: employeeID}) {
		return Balance{}, ErrForbidden
	}
	return s.store.GetOrCreateBalance(ctx, employeeID)
}
