// Package refid generates prefixed, K-sortable identifiers for system-generated
// transaction references and request ids, e.g. "rev_01h2xcejqtf2nbrexx3vqjhp41".
package refid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

type Prefix string

const (
	PrefixReversal   Prefix = "rev"
	PrefixExpiration Prefix = "exp"
	PrefixAdjustment Prefix = "adj"
	PrefixRequest    Prefix = "req"
)

// New panics on an invalid prefix. Prefixes are compile-time constants.
func New(prefix Prefix) string {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("refid: invalid prefix %q: %v", prefix, err))
	}
	return tid.String()
}
