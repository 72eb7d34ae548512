// Package credential provides one-way password hashing for the registry's
// person records. Plaintext passwords exist only on the way into Hash; the
// store persists the opaque hash string, which embeds its own salt and cost.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost keeps verification around tens of milliseconds on commodity
// hardware.
const DefaultCost = 12

// Hasher produces bcrypt hashes at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a hasher with the given cost. Costs outside bcrypt's
// supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted one-way hash from the plaintext. It fails only for
// input bcrypt cannot process, such as passwords beyond 72 bytes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("credential: hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. The bcrypt
// comparison runs in constant time, and a malformed hash string verifies
// false rather than raising.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
