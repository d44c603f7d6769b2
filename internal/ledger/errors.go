package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies ledger errors by what the caller can do about them.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindConflict
	KindCapacity
	KindTemporal
	KindEconomic
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity"
	case KindTemporal:
		return "temporal"
	case KindEconomic:
		return "economic"
	default:
		return "unknown"
	}
}

// Error is a ledger rejection carrying a stable numeric code.
// An error matches the sentinel it was derived from under errors.Is.
// Expense and settlement lookups share code 404 but do not match each other.
type Error struct {
	Code    uint32
	Kind    Kind
	Message string

	sentinel *Error
}

func newError(code uint32, kind Kind, msg string) *Error {
	return &Error{Code: code, Kind: kind, Message: msg}
}

func (e *Error) root() *Error {
	if e.sentinel != nil {
		return e.sentinel
	}
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (u%d)", e.Message, e.Code)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.root() == e.root()
}

// withf returns a copy of e with detail appended to the message.
func (e *Error) withf(format string, args ...any) *Error {
	return &Error{
		Code:     e.Code,
		Kind:     e.Kind,
		Message:  e.Message + ": " + fmt.Sprintf(format, args...),
		sentinel: e.root(),
	}
}

var (
	ErrOwnerOnly          = newError(100, KindAuthorization, "owner only")
	ErrInvalidName        = newError(101, KindValidation, "invalid name")
	ErrInvalidNickname    = newError(102, KindValidation, "invalid nickname")
	ErrUnauthorized       = newError(200, KindAuthorization, "unauthorized")
	ErrInvalidInput       = newError(201, KindValidation, "invalid input")
	ErrInvalidParticipant = newError(202, KindValidation, "invalid participant")
	ErrInvalidPrincipal   = newError(203, KindValidation, "invalid principal")
	ErrNonZeroBalance     = newError(204, KindEconomic, "member has outstanding balances")
	ErrNoDebt             = newError(205, KindEconomic, "no debt")
	ErrMemberNotFound     = newError(206, KindNotFound, "member not found")
	ErrCircleInactive     = newError(207, KindTemporal, "circle inactive")
	ErrCirclePaused       = newError(208, KindTemporal, "circle paused")
	ErrMemberExists       = newError(209, KindConflict, "member exists")
	ErrMaxMembers         = newError(210, KindCapacity, "max members reached")
	ErrCircleNotFound     = newError(212, KindNotFound, "circle not found")
	ErrExpenseNotFound    = newError(404, KindNotFound, "expense not found")
	ErrSettlementNotFound = newError(404, KindNotFound, "settlement not found")
	ErrExpired            = newError(408, KindTemporal, "expense expired")
	ErrAlreadySettled     = newError(410, KindConflict, "already settled")
	ErrLimitExceeded      = newError(413, KindCapacity, "limit exceeded")
)

// CodeOf returns the numeric code of a ledger error, or 0 for any other error.
func CodeOf(err error) uint32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// KindOf returns the kind of a ledger error, or 0 for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
