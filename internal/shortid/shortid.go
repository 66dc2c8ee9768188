// Package shortid generates the 6-character identifiers used for short
// codes, user IDs and visitor IDs.
package shortid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Length is the number of characters in a generated identifier.
const Length = 6

// alphabet is the 62-symbol set identifiers are drawn from.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxAttempts bounds the collision retry loop. With 62^6 possible codes the
// bound is unreachable at any realistic registry size.
const maxAttempts = 100

// ErrExhausted indicates the generator could not find a free identifier
// within the attempt bound.
var ErrExhausted = errors.New("shortid: exhausted generation attempts")

// New generates an identifier that is not taken according to the given
// predicate. A collision regenerates the full identifier rather than
// patching single characters. The caller must reserve the returned value
// before calling New again with the same predicate.
func New(taken func(string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id, err := random()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

// random produces one candidate identifier, each character chosen uniformly
// from the alphabet using crypto/rand.
func random() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("shortid: read random: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
