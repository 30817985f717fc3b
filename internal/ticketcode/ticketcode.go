// Package ticketcode generates the short human-presentable codes printed
// on tickets.  Codes are meant to be read aloud and typed at check-in,
// so the alphabet excludes visually ambiguous characters; they are not
// a cryptographic credential.
package ticketcode

import (
	"context"
	"crypto/rand"
	"errors"
)

const (
	// Prefix is the fixed, human-readable lead-in of every ticket code.
	Prefix = "TKT"
	// codeLength is the number of random symbols after the prefix.
	codeLength = 8
	// maxAttempts bounds collision retries.  With 32^8 possible codes a
	// collision is a once-in-a-blue-moon event; the bound exists so a
	// corrupted uniqueness index fails loudly instead of looping forever.
	maxAttempts = 20
	// alphabet has exactly 32 symbols with 0/O and 1/I removed.  256 is a
	// multiple of 32, so indexing random bytes modulo the alphabet length
	// introduces no bias.
	alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// ErrExhausted is returned when the retry bound is hit without finding a
// free code.  Callers should abort their transaction and surface this as
// an internal error worth alerting on.
var ErrExhausted = errors.New("ticket code generation exhausted")

// ExistsFunc reports whether a candidate code is already taken.  The
// check must run against the same transaction that will insert the
// registration, never a stale read.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Random returns a fresh candidate code of the form PREFIX-XXXXXXXX.
func Random() (string, error) {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return Prefix + "-" + string(b), nil
}

// GenerateUnique produces a code that the supplied existence check does
// not know about.  On collision it regenerates, up to maxAttempts times,
// after which it returns ErrExhausted.  Errors from the existence check
// are returned as-is so datastore failures are not mistaken for
// collisions.
func GenerateUnique(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := Random()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}
