package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher names an AEAD used for new tokens.
type Cipher string

const (
	CipherAESGCM    Cipher = "aes-256-gcm"
	CipherXChaCha20 Cipher = "xchacha20-poly1305"
)

const (
	tokenAESGCM    byte = 0x01
	tokenXChaCha20 byte = 0x02
)

var cipherVersions = map[Cipher]byte{
	CipherAESGCM:    tokenAESGCM,
	CipherXChaCha20: tokenXChaCha20,
}

// Ciphers lists the supported token ciphers.
func Ciphers() []Cipher {
	return []Cipher{CipherAESGCM, CipherXChaCha20}
}

func newAEAD(version byte, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length %d, want %d", len(key), KeySize)
	}

	switch version {
	case tokenAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return gcm, nil
	case tokenXChaCha20:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("%w: version 0x%02x", ErrUnsupportedCipher, version)
	}
}
