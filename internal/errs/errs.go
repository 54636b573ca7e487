package errs

import (
	"errors"
)

// Policy violations. Expected business outcomes, never retried.
var (
	ErrMemberBlocked            = errors.New("member is blocked")
	ErrFineLimitExceeded        = errors.New("outstanding fines exceed the allowed limit")
	ErrLoanLimitExceeded        = errors.New("member has reached the maximum loan limit")
	ErrRenewalLimitExceeded     = errors.New("maximum renewal limit reached")
	ErrReservedByOthers         = errors.New("cannot renew: reserved by another member")
	ErrReservedForAnotherMember = errors.New("item is held for another member")
	ErrAvailableCopyExists      = errors.New("an available copy exists: borrow it directly")
	ErrPaymentBeforeReturn      = errors.New("fine cannot be settled while the loan is still open")
	ErrOverpayment              = errors.New("payment exceeds the remaining fine balance")
)

// Conflict errors. Indicate a concurrent state change; the facade retries
// a conflicting step once before surfacing.
var (
	ErrConflict             = errors.New("state changed concurrently")
	ErrDuplicateReservation = errors.New("member already holds a reservation for this title")
	ErrDuplicateBarcode     = errors.New("barcode already exists")
)

// Integrity guards. Hard stops, never bypassed.
var (
	ErrHasActiveLoans = errors.New("member still holds unreturned loans")
	ErrHasUnpaidFines = errors.New("member has unpaid fines")
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoActiveLoan    = errors.New("no active loan for this barcode")
	ErrAlreadyReturned = errors.New("loan is already closed")
	ErrAlreadyTerminal = errors.New("reservation is already terminal")
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrMemberBlocked, "MemberBlocked"},
	{ErrFineLimitExceeded, "FineLimitExceeded"},
	{ErrLoanLimitExceeded, "LoanLimitExceeded"},
	{ErrRenewalLimitExceeded, "RenewalLimitExceeded"},
	{ErrReservedByOthers, "ReservedByOthers"},
	{ErrReservedForAnotherMember, "ReservedForAnotherMember"},
	{ErrAvailableCopyExists, "AvailableCopyExists"},
	{ErrPaymentBeforeReturn, "PaymentBeforeReturn"},
	{ErrOverpayment, "Overpayment"},
	{ErrConflict, "Conflict"},
	{ErrDuplicateReservation, "DuplicateReservation"},
	{ErrDuplicateBarcode, "DuplicateBarcode"},
	{ErrHasActiveLoans, "HasActiveLoans"},
	{ErrHasUnpaidFines, "HasUnpaidFines"},
	{ErrNotFound, "NotFound"},
	{ErrNoActiveLoan, "NoActiveLoan"},
	{ErrAlreadyReturned, "AlreadyReturned"},
	{ErrAlreadyTerminal, "AlreadyTerminal"},
}

// Kind maps an error to its stable machine-readable kind. Unknown errors
// map to "Internal".
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}

// IsRetryable reports whether the failed step may be retried once by the
// facade. Only lock/CAS conflicts qualify: duplicates fail deterministically.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
