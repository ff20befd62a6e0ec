package upload

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	nameLength   = 20
	nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewName generates a 20-character random alphanumeric string. It names both
// stored files and deletion tickets; the two must always come from separate
// calls, since filenames are public while tickets grant deletion authority.
// 62^20 combinations make collisions negligible at this service's volume.
func NewName() (string, error) {
	max := big.NewInt(int64(len(nameAlphabet)))
	buf := make([]byte, nameLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate name: %w", err)
		}
		buf[i] = nameAlphabet[n.Int64()]
	}
	return string(buf), nil
}
