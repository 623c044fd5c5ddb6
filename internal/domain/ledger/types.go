package ledger

import "loyalty-ledger/internal/pkg/errs"

type Kind string

const (
	KindEarn       Kind = "earn"
	KindRedeem     Kind = "redeem"
	KindAdjustment Kind = "adjustment"
	KindReversal   Kind = "reversal"
	KindExpiration Kind = "expiration"
)

func (k Kind) Valid() bool {
	switch k {
	case KindEarn, KindRedeem, KindAdjustment, KindReversal, KindExpiration:
		return true
	}
	return false
}

// Reversible reports whether entries of this kind may be reversed.
func (k Kind) Reversible() bool {
	return k == KindEarn || k == KindRedeem
}

const maxReferenceLength = 128

// MaxEntryPoints bounds the magnitude of a single entry. It keeps every
// reachable balance far inside int64.
const MaxEntryPoints int64 = 1_000_000_000

var (
	ErrReferenceRequired  = errs.Wrap(errs.ErrInvalidRequest, "transaction reference is required")
	ErrReferenceTooLong   = errs.Wrap(errs.ErrInvalidRequest, "transaction reference exceeds 128 characters")
	ErrNonPositivePoints  = errs.Wrap(errs.ErrInvalidRequest, "points must be greater than 0")
	ErrPointsOutOfRange   = errs.Wrap(errs.ErrInvalidRequest, "points exceed 1000000000 per transaction")
	ErrBalanceOverflow    = errs.Wrap(errs.ErrInvalidState, "balance would exceed the supported range")
	ErrZeroAdjustment     = errs.Wrap(errs.ErrInvalidRequest, "adjustment points must not be zero")
	ErrReasonCodeRequired = errs.Wrap(errs.ErrInvalidRequest, "reason code is required")
	ErrNotReversible      = errs.Wrap(errs.ErrInvalidRequest, "only earn and redeem transactions can be reversed")
	ErrAlreadyReversed    = errs.Wrap(errs.ErrConflict, "transaction has already been reversed")
	ErrInvalidKind        = errs.Wrap(errs.ErrInvalidRequest, "unknown transaction kind")
	ErrReversalNegative   = errs.Wrap(errs.ErrInvalidState, "reversal would make the balance negative")
	ErrAdjustmentNegative = errs.Wrap(errs.ErrInvalidState, "adjustment would make the balance negative")
	ErrEntryNotFound      = errs.Wrap(errs.ErrNotFound, "transaction not found")
	ErrMembershipMismatch = errs.Wrap(errs.ErrInvalidRequest, "transaction does not belong to the membership")
)
