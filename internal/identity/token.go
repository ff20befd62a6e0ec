package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a bearer token for the given user id. Tokens are HS512
// JWTs carrying the numeric id as a claim, which keeps them compatible with
// client configs issued by earlier versions of this service. The resolver
// never verifies the signature; tokens are opaque secrets compared verbatim,
// so the signing key only needs to make the token unguessable.
func GenerateToken(userID int, key string) (string, error) {
	if key == "" {
		raw := make([]byte, 64)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("generate signing key: %w", err)
		}
		key = hex.EncodeToString(raw)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"id": userID})
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
