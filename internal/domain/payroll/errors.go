package payroll

import "dayflow/internal/apperrors"

var (
	ErrRecordNotFound   = apperrors.New(apperrors.ErrNotFound, "payroll record not found")
	ErrEmployeeNotFound = apperrors.New(apperrors.ErrNotFound, "employee not found")
	ErrForbidden        = apperrors.New(apperrors.ErrForbidden, "insufficient permissions")
	ErrInvalidPeriod    = apperrors.New(apperrors.ErrValidation, "month must be 1-12 and year must be valid")
	ErrNegativeAmount   = apperrors.New(apperrors.ErrValidation, "salary components must not be negative")
	ErrInvalidStatus    = apperrors.New(apperrors.ErrValidation, "status must be one of pending, processed, paid")
	ErrDuplicatePeriod  = apperrors.New(apperrors.ErrDuplicate, "a payroll record already exists for this employee and period")
)
