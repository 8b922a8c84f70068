// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/movie-social/internal/reaction"
)

// Map converts engine/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, reaction.ErrInvalidEntryKind),
		errors.Is(err, reaction.ErrInvalidCursor):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, reaction.ErrEntryNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "entry not found")

	case errors.Is(err, reaction.ErrSelfReaction):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, reaction.ErrConflict):
		return status.Error(codes.Aborted, "concurrent update, please retry")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// storage details stay in the logs
		return status.Error(codes.Internal, "internal error")
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}

// Unauthenticated creates a gRPC Unauthenticated error.
func Unauthenticated(msg string) error {
	return status.Error(codes.Unauthenticated, msg)
}
