package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// randReader is a test seam for the system entropy source.
var randReader io.Reader = rand.Reader

// Engine derives keys and seals tokens with a fixed set of parameters.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	kdf        KDF
	iterations int
	cipher     Cipher
}

type Option func(*Engine)

func WithKDF(kdf KDF) Option {
	return func(e *Engine) { e.kdf = kdf }
}

// WithIterations sets the PBKDF2 iteration count. It has no effect on the
// memory-hard KDFs.
func WithIterations(n int) Option {
	return func(e *Engine) { e.iterations = n }
}

func WithCipher(c Cipher) Option {
	return func(e *Engine) { e.cipher = c }
}

// New returns an Engine using PBKDF2-SHA256 with DefaultIterations and
// AES-256-GCM unless overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		kdf:        KDFPBKDF2,
		iterations: DefaultIterations,
		cipher:     CipherAESGCM,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateSalt returns SaltSize fresh random bytes.
func (e *Engine) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return nil, newError("generate salt", KindRandom, err)
	}
	return salt, nil
}

// DeriveKey stretches password with salt into a KeySize key. It is
// deliberately slow and a pure function of its inputs.
func (e *Engine) DeriveKey(password, salt []byte) ([]byte, error) {
	derive, ok := kdfs[e.kdf]
	if !ok {
		return nil, newError("derive key", KindKeyDerivation, fmt.Errorf("%w: %q", ErrUnsupportedKDF, e.kdf))
	}
	if len(salt) == 0 {
		return nil, newError("derive key", KindKeyDerivation, errors.New("empty salt"))
	}

	key, err := derive(password, salt, e.iterations)
	if err != nil {
		return nil, newError("derive key", KindKeyDerivation, err)
	}
	return key, nil
}

// Encrypt seals plaintext under key and returns a versioned token.
func (e *Engine) Encrypt(plaintext, key []byte) ([]byte, error) {
	version, ok := cipherVersions[e.cipher]
	if !ok {
		return nil, newError("encrypt", KindCipher, fmt.Errorf("%w: %q", ErrUnsupportedCipher, e.cipher))
	}

	aead, err := newAEAD(version, key)
	if err != nil {
		return nil, newError("encrypt", KindCipher, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, newError("encrypt", KindRandom, err)
	}

	token := make([]byte, 0, 1+len(nonce)+len(plaintext)+aead.Overhead())
	token = append(token, version)
	token = append(token, nonce...)

	return aead.Seal(token, nonce, plaintext, token[:1]), nil
}

// Decrypt opens a token produced by Encrypt with any supported cipher.
// A wrong key or a damaged token yields a KindAuth error.
func (e *Engine) Decrypt(token, key []byte) ([]byte, error) {
	if len(token) == 0 {
		return nil, authError("decrypt", "empty token")
	}

	version := token[0]
	if version != tokenAESGCM && version != tokenXChaCha20 {
		return nil, authError("decrypt", fmt.Sprintf("unknown token version 0x%02x", version))
	}

	aead, err := newAEAD(version, key)
	if err != nil {
		return nil, newError("decrypt", KindCipher, err)
	}

	ns := aead.NonceSize()
	if len(token) < 1+ns+aead.Overhead() {
		return nil, authError("decrypt", "token too short")
	}

	plaintext, err := aead.Open(nil, token[1:1+ns], token[1+ns:], token[:1])
	if err != nil {
		return nil, authError("decrypt", "message authentication failed")
	}
	return plaintext, nil
}

// HashKey returns the login verifier for key.
func HashKey(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// VerifyKey reports whether key hashes to verifier, in constant time.
func VerifyKey(key, verifier []byte) bool {
	return subtle.ConstantTimeCompare(HashKey(key), verifier) == 1
}
