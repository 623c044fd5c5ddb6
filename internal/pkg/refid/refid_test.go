//go:build unit

package refid_test

import (
	"strings"
	"testing"

	"loyalty-ledger/internal/pkg/refid"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	for _, p := range []refid.Prefix{refid.PrefixReversal, refid.PrefixExpiration, refid.PrefixAdjustment, refid.PrefixRequest} {
		id := refid.New(p)
		assert.True(t, strings.HasPrefix(id, string(p)+"_"), id)
		assert.LessOrEqual(t, len(id), 128)
	}

	assert.NotEqual(t, refid.New(refid.PrefixReversal), refid.New(refid.PrefixReversal))
	assert.Panics(t, func() { refid.New(refid.Prefix("Not Valid")) })
}
