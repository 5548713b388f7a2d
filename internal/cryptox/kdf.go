package cryptox

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KDF names a password-based key derivation function.
type KDF string

const (
	KDFPBKDF2   KDF = "pbkdf2-sha256"
	KDFArgon2ID KDF = "argon2id"
	KDFScrypt   KDF = "scrypt"
)

const (
	DefaultIterations = 210_000
	MinIterations     = 100_000

	argon2Time    uint32 = 1
	argon2Memory  uint32 = 64 * 1024
	argon2Threads uint8  = 4

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

type deriveFunc func(password, salt []byte, iterations int) ([]byte, error)

var kdfs = map[KDF]deriveFunc{
	KDFPBKDF2: func(password, salt []byte, iterations int) ([]byte, error) {
		if iterations < 1 {
			return nil, fmt.Errorf("invalid iteration count %d", iterations)
		}
		return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New), nil
	},
	KDFArgon2ID: func(password, salt []byte, _ int) ([]byte, error) {
		return argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, KeySize), nil
	},
	KDFScrypt: func(password, salt []byte, _ int) ([]byte, error) {
		return scrypt.Key(password, salt, scryptN, scryptR, scryptP, KeySize)
	},
}

// KDFs lists the supported key derivation functions.
func KDFs() []KDF {
	return []KDF{KDFPBKDF2, KDFArgon2ID, KDFScrypt}
}
