package rule

import (
	"bytes"
	"math"
	"sort"
	"time"

	"loyalty-ledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest purchase amount a ledger entry can record.
var MaxAmount = decimal.RequireFromString("999999999999.99")

const amountScale = 2

var (
	ErrAmountOutOfRange = errs.Wrap(errs.ErrInvalidRequest, "purchase amount exceeds 999999999999.99")
	ErrAmountPrecision  = errs.Wrap(errs.ErrInvalidRequest, "purchase amount has more than 2 decimal places")
	ErrPointsOverflow   = errs.Wrap(errs.ErrInvalidRequest, "computed points exceed the supported range")

	maxPoints = decimal.NewFromInt(math.MaxInt64)
)

// ValidateAmount checks the bounds of a stored purchase amount. Positivity is checked by the caller.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountOutOfRange
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return ErrAmountPrecision
	}
	return nil
}

// Breakdown is the result of converting a purchase amount into points.
type Breakdown struct {
	TotalPoints int64
	RuleID      *uuid.UUID
	BasePoints  int64
	Multiplier  *decimal.Decimal
	BonusPoints int64
}

// Evaluate selects the rule with the highest priority among those that apply
// and computes the points for amount. Equal priorities fall back to the lowest
// rule id so the choice never depends on storage order.
// When nothing applies the zero Breakdown is returned.
func Evaluate(rules []*Rule, amount decimal.Decimal, at time.Time) (Breakdown, error) {
	if !amount.IsPositive() {
		return Breakdown{}, nil
	}

	candidates := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		if r != nil && r.Applies(amount, at) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return Breakdown{}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		return bytes.Compare(candidates[i].id[:], candidates[j].id[:]) < 0
	})

	return candidates[0].Calculate(amount)
}

// Calculate applies the rule formula without checking eligibility.
// Results that do not fit in int64 are rejected rather than truncated.
func (r *Rule) Calculate(amount decimal.Decimal) (Breakdown, error) {
	base, err := floorPoints(r.pointsPerUnit.Mul(amount))
	if err != nil {
		return Breakdown{}, err
	}

	mult := decimal.NewFromInt(1)
	if r.multiplier != nil {
		mult = *r.multiplier
	}
	total, err := floorPoints(decimal.NewFromInt(base).Mul(mult))
	if err != nil {
		return Breakdown{}, err
	}

	bonus := total - base
	if bonus < 0 {
		bonus = 0
	}

	id := r.id
	return Breakdown{
		TotalPoints: total,
		RuleID:      &id,
		BasePoints:  base,
		Multiplier:  r.multiplier,
		BonusPoints: bonus,
	}, nil
}

func floorPoints(d decimal.Decimal) (int64, error) {
	f := d.Floor()
	if f.Abs().GreaterThan(maxPoints) {
		return 0, errs.Wrapf(ErrPointsOverflow, "%s points", f.String())
	}
	return f.IntPart(), nil
}
