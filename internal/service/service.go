package service

import (
	"fmt"

	"github.com/agenthub/agenthub/internal/domain"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// normalizeLimit clamps a requested page size to sane bounds.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// validationError wraps err so writeDomainError maps it to 400.
func validationError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}
