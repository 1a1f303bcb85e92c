package service

import (
	"context"
	"errors"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

const (
	failureCapacity = "CAPACITY_EXCEEDED"
	failureBudget   = "GENERATION_BUDGET_EXCEEDED"
	failureInternal = "INTERNAL_ERROR"
)

// translateAllocatorError maps engine errors onto the API error taxonomy.
func translateAllocatorError(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *allocator.ValidationError
	var conflictErr *allocator.ConfigConflictError
	var capacityErr *allocator.CapacityExceededError
	switch {
	case errors.As(err, &validationErr):
		wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student batch")
		return appErrors.WithDetails(wrapped, validationErr.Problems)
	case errors.Is(err, allocator.ErrEmptyBatch):
		return appErrors.Clone(appErrors.ErrNoStudents, "")
	case errors.As(err, &conflictErr):
		return appErrors.Wrap(err, appErrors.ErrConfigConflict.Code, appErrors.ErrConfigConflict.Status, conflictErr.Error())
	case errors.As(err, &capacityErr):
		return appErrors.Wrap(err, appErrors.ErrCapacityExceeded.Code, appErrors.ErrCapacityExceeded.Status, capacityErr.Error())
	default:
		return appErrors.FromError(err)
	}
}

// sessionFailure reports a failed session with the engine message verbatim.
func sessionFailure(err error) models.SessionFailure {
	var capacityErr *allocator.CapacityExceededError
	switch {
	case errors.As(err, &capacityErr):
		return models.SessionFailure{Code: failureCapacity, Message: err.Error(), Shortfall: capacityErr.Shortfall}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.SessionFailure{Code: failureBudget, Message: err.Error()}
	default:
		return models.SessionFailure{Code: failureInternal, Message: err.Error()}
	}
}
