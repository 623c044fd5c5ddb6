// Package fingerprint hashes request payloads so a retried request can be told
// apart from a different request that reuses the same transaction reference.
package fingerprint

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// Of returns the hex encoded BLAKE2b-256 digest of v's JSON encoding.
// encoding/json sorts map keys, so logically equal payloads hash the same.
func Of(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func MustOf(v any) string {
	s, err := Of(v)
	if err != nil {
		panic("fingerprint: " + err.Error())
	}
	return s
}
