// Package cryptox is the security core of savelinks.
//
// It turns a password into a session key, turns the key into a login
// verifier, and seals individual records with authenticated encryption.
//
// # Key derivation
//
// Engine.DeriveKey runs one of the registered password KDFs and always yields
// KeySize bytes:
//
//   - pbkdf2-sha256 (default): PBKDF2-HMAC-SHA256, iteration count tunable
//   - argon2id: time=1, memory=64 MiB, threads=4
//   - scrypt: N=32768, r=8, p=1
//
// The same (password, salt) pair always produces the same key, so a key can
// be recomputed at login from the stored salt.
//
// # Verifier
//
// HashKey is SHA-256 over the derived key. Only the verifier is stored; the
// key itself never leaves process memory. VerifyKey compares in constant time.
//
// # Tokens
//
// Encrypt returns a self-contained token:
//
//	version(1) || nonce || ciphertext || tag
//
// Version 0x01 is AES-256-GCM with a 12-byte nonce, version 0x02 is
// XChaCha20-Poly1305 with a 24-byte nonce. The version byte is authenticated
// as additional data. Decrypt picks the algorithm from the version byte, so
// tokens stay readable after the configured cipher changes.
//
// # Errors
//
// Every failure is an *Error carrying a Kind. Wrong keys and damaged tokens
// are KindAuth and match ErrAuthFailed; the other kinds indicate a broken
// environment or bad parameters.
package cryptox
