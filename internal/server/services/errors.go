package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
)

var kinds = []error{
	common.ErrorNotFound,
	common.ErrorStoreUnavailable,
	common.ErrorCatalogUnavailable,
	common.ErrorCatalogNotFound,
	common.ErrorAccessDenied,
	common.ErrorValidation,
	common.ErrorInvalidTransition,
	common.ErrorUnauthorized,
}

// classified reports whether err already carries one of the common kinds.
func classified(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// storeFailure tags err as a store failure unless a lower layer already
// classified it.
func storeFailure(op string, err error) error {
	if classified(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrorStoreUnavailable, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}
