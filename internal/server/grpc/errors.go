package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// codeFor maps a service error to its gRPC code. Validation is checked
// before CatalogNotFound so an unknown category at creation reads as a bad
// argument.
func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return codes.Unauthenticated
	case errors.Is(err, common.ErrorValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorCatalogNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrorAccessDenied):
		return codes.PermissionDenied
	case errors.Is(err, common.ErrorInvalidTransition):
		return codes.FailedPrecondition
	case errors.Is(err, common.ErrorStoreUnavailable),
		errors.Is(err, common.ErrorCatalogUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// toStatus converts err into a gRPC status error. Store and internal
// failures are reported without driver detail.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	code := codeFor(err)
	switch code {
	case codes.Unavailable:
		s.logger.Warn(ctx, "store unavailable", "method", method, "error", err.Error())
		return status.Error(code, "store unavailable")
	case codes.Internal:
		s.logger.Error(ctx, "internal error", "method", method, "error", err.Error())
		return status.Error(code, "internal error")
	default:
		return status.Error(code, err.Error())
	}
}
