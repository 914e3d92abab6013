package leave

import (
	"errors"

	"dayflow/internal/apperrors"
)

var (
	ErrInsufficientBalance = apperrors.New(apperrors.ErrBusinessRule, "insufficient leave balance")
	ErrNotPending          = apperrors.New(apperrors.ErrBusinessRule, "only pending requests can be deleted")
	ErrInvalidTransition   = apperrors.New(apperrors.ErrConflict, "leave request has already been decided")
	ErrRequestNotFound     = apperrors.New(apperrors.ErrNotFound, "leave request not found")
	ErrEmployeeNotFound    = apperrors.New(apperrors.ErrNotFound, "employee not found")
	ErrForbidden           = apperrors.New(apperrors.ErrForbidden, "not allowed to access this leave data")
	ErrInvalidCategory     = apperrors.New(apperrors.ErrValidation, "leave type must be one of annual, sick, personal, unpaid")
	ErrInvalidStatus       = apperrors.New(apperrors.ErrValidation, "status must be one of pending, approved, rejected")
	ErrReasonRequired      = apperrors.New(apperrors.ErrValidation, "reason is required")
	ErrInvalidRange        = apperrors.New(apperrors.ErrValidation, "end date must be on or after start date")

	// ErrUntrackedCategory is a caller error: unpaid leave has no ledger entry.
	ErrUntrackedCategory = errors.New("leave category has no balance ledger")
)

func insufficient(c Category) error {
	return apperrors.Newf(ErrInsufficientBalance, "insufficient %s leave balance", c)
}

func isInsufficient(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
