package ledger

import "math"

// Sum adds the signed points of entries. Reversals already carry the inverted
// sign of the entry they cancel, so no special casing is needed.
func Sum(entries []*Entry) (int64, error) {
	var total int64
	for _, e := range entries {
		next, err := AddPoints(total, e.points)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// AddPoints returns sum+points or ErrBalanceOverflow when the result does not fit in int64.
func AddPoints(sum, points int64) (int64, error) {
	if (points > 0 && sum > math.MaxInt64-points) || (points < 0 && sum < math.MinInt64-points) {
		return 0, ErrBalanceOverflow
	}
	return sum + points, nil
}

// Project turns a ledger sum into a balance. Balances never go below zero.
func Project(sum int64) int64 {
	if sum < 0 {
		return 0
	}
	return sum
}
