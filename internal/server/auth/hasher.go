// Package auth implements the credential hasher and the signed session
// cookie codec.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Fixed for every hash; changing them invalidates
// stored credentials.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var saltEncoding = base64.RawStdEncoding

// HashPassword derives an argon2id hash of password under a fresh random
// salt and returns both, base64-encoded. Two calls with the same password
// yield different salts and therefore different hashes. Any byte string,
// including empty, is valid input.
func HashPassword(password string) (hash string, salt string, err error) {
	saltBytes := common.GenerateRandByteArray(saltLen)

	key := argon2.IDKey([]byte(password), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)

	return saltEncoding.EncodeToString(key), saltEncoding.EncodeToString(saltBytes), nil
}

// VerifyPassword re-derives the hash of candidate under the stored salt and
// compares it to storedHash in constant time. A wrong password returns
// (false, nil). A salt that is not valid base64 returns ErrMalformedSalt;
// that is an integrity fault, not a failed login.
func VerifyPassword(salt, storedHash, candidate string) (bool, error) {
	saltBytes, err := saltEncoding.DecodeString(salt)
	if err != nil || len(saltBytes) == 0 {
		return false, fmt.Errorf("%w: %q", common.ErrMalformedSalt, salt)
	}

	key := argon2.IDKey([]byte(candidate), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	encoded := saltEncoding.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(encoded), []byte(storedHash)) == 1, nil
}
