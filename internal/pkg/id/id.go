package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort by creation time and are safe
// as DynamoDB partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Digits returns n decimal digits drawn uniformly from crypto/rand.
// Leading zeros are kept, so "004219" is a valid 6-digit result.
func Digits(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("digit count must be positive, got %d", n)
	}
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("read random digit: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
