package tier

import (
	"bytes"
	"sort"
)

// Resolve returns the tier that contains balance, or nil.
// Tiers of a tenant are not supposed to overlap; if they do, the lowest
// priority value wins, then the higher floor, then the lowest id.
func Resolve(tiers []*Tier, balance int64) *Tier {
	candidates := make([]*Tier, 0, len(tiers))
	for _, t := range tiers {
		if t != nil && t.IsActive() && t.Contains(balance) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.minPoints != b.minPoints {
			return a.minPoints > b.minPoints
		}
		return bytes.Compare(a.id[:], b.id[:]) < 0
	})
	return candidates[0]
}

// Next returns the active tier with the lowest floor above balance, or nil
// when balance already sits in the top band.
func Next(tiers []*Tier, balance int64) *Tier {
	var next *Tier
	for _, t := range tiers {
		if t == nil || !t.IsActive() || t.minPoints <= balance {
			continue
		}
		if next == nil || t.minPoints < next.minPoints ||
			(t.minPoints == next.minPoints && t.priority < next.priority) {
			next = t
		}
	}
	return next
}
