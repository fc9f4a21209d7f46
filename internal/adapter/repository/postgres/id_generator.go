package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// AccountNoGenerator generates 10-digit account number candidates. Uniqueness
// is enforced by the accounts table; collisions surface as unique violations
// and the caller retries with a fresh candidate.
type AccountNoGenerator struct{}

// NewAccountNoGenerator creates a new AccountNoGenerator.
func NewAccountNoGenerator() *AccountNoGenerator {
	return &AccountNoGenerator{}
}

var accountNoMax = big.NewInt(10_000_000_000)

// Generate returns a random zero-padded 10-digit number.
func (g *AccountNoGenerator) Generate() string {
	n, err := rand.Int(rand.Reader, accountNoMax)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}

	digits := n.String()
	for len(digits) < 10 {
		digits = "0" + digits
	}

	return digits
}
