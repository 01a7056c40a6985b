package partner

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// DefaultCodePrefix is the prefix used for partner codes when the caller does
// not supply one.
const DefaultCodePrefix = "PART"

// codeRandomBytes is the number of random bytes in a code; 3 bytes render as
// 6 uppercase hex characters.
const codeRandomBytes = 3

// GenerateCode produces a candidate partner code of the form
// "{prefix}-{6 uppercase hex chars}", e.g. "PART-3F9A1C". An empty prefix
// falls back to DefaultCodePrefix.
//
// Codes double as bearer credentials for portal login, so the randomness
// comes from crypto/rand. Uniqueness against the registry is checked by the
// caller, which retries with a fresh candidate on collision.
func GenerateCode(prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}

	buf := make([]byte, codeRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating partner code: %w", err)
	}

	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(fmt.Sprintf("%x", buf))), nil
}

// GenerateUniqueCode produces a code no existing partner holds, retrying with
// a fresh candidate until the exists check reports a free one. The check runs
// against the registry (or a transaction over it); the small keyspace makes
// occasional collisions expected rather than exceptional.
func GenerateUniqueCode(prefix string, exists func(code string) (bool, error)) (string, error) {
	for {
		code, err := GenerateCode(prefix)
		if err != nil {
			return "", err
		}

		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}
