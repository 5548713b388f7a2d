package cryptox

import (
	"errors"
	"fmt"
)

// Kind classifies a security failure.
type Kind uint8

const (
	// KindKeyDerivation: the KDF could not run (unknown algorithm, bad parameters).
	KindKeyDerivation Kind = iota + 1
	// KindRandom: the system entropy source failed.
	KindRandom
	// KindCipher: the AEAD could not be constructed, e.g. bad key length.
	KindCipher
	// KindAuth: wrong key, or the token is tampered, truncated or unknown.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindKeyDerivation:
		return "key derivation failed"
	case KindRandom:
		return "random source failed"
	case KindCipher:
		return "cipher setup failed"
	case KindAuth:
		return "authentication failed"
	default:
		return "unknown"
	}
}

var (
	ErrAuthFailed        = errors.New("authentication failed")
	ErrUnsupportedKDF    = errors.New("unsupported kdf")
	ErrUnsupportedCipher = errors.New("unsupported cipher")
)

// Error is returned by every operation in this package.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cryptox: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func authError(op, reason string) *Error {
	return newError(op, KindAuth, fmt.Errorf("%w: %s", ErrAuthFailed, reason))
}
