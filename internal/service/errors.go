package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/internal/middleware"
)

// ErrorCodeHeader carries the numeric ledger error code on rejected calls.
const ErrorCodeHeader = "Circlecare-Error-Code"

var kindCodes = map[ledger.Kind]connect.Code{
	ledger.KindValidation:    connect.CodeInvalidArgument,
	ledger.KindEconomic:      connect.CodeInvalidArgument,
	ledger.KindAuthorization: connect.CodePermissionDenied,
	ledger.KindNotFound:      connect.CodeNotFound,
	ledger.KindConflict:      connect.CodeAlreadyExists,
	ledger.KindCapacity:      connect.CodeResourceExhausted,
	ledger.KindTemporal:      connect.CodeFailedPrecondition,
}

// toConnectError converts a ledger error into a Connect error. Errors that are
// not ledger rejections become CodeInternal.
func toConnectError(err error) error {
	var le *ledger.Error
	if !errors.As(err, &le) {
		return connect.NewError(connect.CodeInternal, err)
	}
	code, ok := kindCodes[le.Kind]
	if !ok {
		code = connect.CodeUnknown
	}
	cerr := connect.NewError(code, err)
	cerr.Meta().Set(ErrorCodeHeader, strconv.FormatUint(uint64(le.Code), 10))
	return cerr
}

// LedgerCode returns the numeric ledger code carried by a Connect error, or 0.
func LedgerCode(err error) uint32 {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return 0
	}
	n, perr := strconv.ParseUint(cerr.Meta().Get(ErrorCodeHeader), 10, 32)
	if perr != nil {
		return 0
	}
	return uint32(n)
}

// fail logs a failed operation and converts err for the wire.
func fail(op string, err error, args ...any) error {
	args = append(args, "error", err)
	if ledger.CodeOf(err) != 0 {
		slog.Warn(op+" rejected", args...)
	} else {
		slog.Error(op+" failed", args...)
	}
	return toConnectError(err)
}

// callerOf returns the authenticated principal of the call.
func callerOf(ctx context.Context) (string, error) {
	p := middleware.GetPrincipal(ctx)
	if p == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return p, nil
}
