package srp

import (
	"crypto/rand"
	"fmt"
)

//go:generate go tool mockgen -destination=mock_random_test.go -package=srp_test github.com/fzdarsky/srp6a/pkg/srp RandomSource

// RandomSource produces unpredictable bytes. Implementations must be safe for
// concurrent use and return independent output on every call.
type RandomSource interface {
	RandomBytes(n int) ([]byte, error)
}

// SecureRandom reads from crypto/rand.
type SecureRandom struct{}

// RandomBytes implements RandomSource.
func (SecureRandom) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
