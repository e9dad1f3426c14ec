package bithumb

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bithumbkit/pkg/core"
)

// Signer builds per-request bearer tokens from API credentials.
// Tokens are ephemeral: one is minted for each HTTP call and never stored.
type Signer struct {
	creds core.Credentials
}

// NewSigner creates a Signer for the given credentials.
func NewSigner(creds core.Credentials) *Signer {
	return &Signer{creds: creds}
}

// Sign returns the Authorization header value for one request. The claim
// set always carries the access key, a random UUID nonce, and a millisecond
// timestamp; when params is non-empty it additionally carries the SHA-512
// hex digest of the canonical query-string encoding, which must match what
// the server computes from the request it receives. The input params are
// not modified.
func (s *Signer) Sign(params core.Params) (string, error) {
	claims := jwt.MapClaims{
		"access_key": s.creds.AccessKey,
		"nonce":      uuid.NewString(),
		"timestamp":  time.Now().UnixMilli(),
	}

	if len(params) > 0 {
		digest := sha512.Sum512([]byte(params.Encode()))
		claims["query_hash"] = hex.EncodeToString(digest[:])
		claims["query_hash_alg"] = "SHA512"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.creds.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return "Bearer " + token, nil
}
