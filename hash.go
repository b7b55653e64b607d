package logsafe

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgo represents a supported fingerprint algorithm.
// Use these constants in struct tags: `log.hash:"sha256"`
type HashAlgo string

const (
	// HashSHA256 uses SHA-256.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512.
	HashSHA512 HashAlgo = "sha512"

	// HashBLAKE2b uses BLAKE2b-256.
	HashBLAKE2b HashAlgo = "blake2b"

	// HashSHA3 uses SHA3-256.
	HashSHA3 HashAlgo = "sha3"
)

// validHashAlgos contains all valid hash algorithms for tag validation.
var validHashAlgos = map[HashAlgo]bool{
	HashSHA256:  true,
	HashSHA512:  true,
	HashBLAKE2b: true,
	HashSHA3:    true,
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// Hasher produces a deterministic fingerprint so equal values can be correlated
// across log lines without revealing them. Not for passwords.
type Hasher interface {
	// Hash returns the hex-encoded digest of plaintext.
	Hash(plaintext []byte) string
}

// HasherFunc adapts a function to the Hasher interface.
type HasherFunc func(plaintext []byte) string

// Hash calls f(plaintext).
func (f HasherFunc) Hash(plaintext []byte) string {
	return f(plaintext)
}

// SHA256Hasher returns a SHA-256 hasher producing 64 hex characters.
func SHA256Hasher() Hasher {
	return HasherFunc(func(p []byte) string {
		sum := sha256.Sum256(p)
		return hex.EncodeToString(sum[:])
	})
}

// SHA512Hasher returns a SHA-512 hasher producing 128 hex characters.
func SHA512Hasher() Hasher {
	return HasherFunc(func(p []byte) string {
		sum := sha512.Sum512(p)
		return hex.EncodeToString(sum[:])
	})
}

// BLAKE2bHasher returns a BLAKE2b-256 hasher producing 64 hex characters.
func BLAKE2bHasher() Hasher {
	return HasherFunc(func(p []byte) string {
		sum := blake2b.Sum256(p)
		return hex.EncodeToString(sum[:])
	})
}

// SHA3Hasher returns a SHA3-256 hasher producing 64 hex characters.
func SHA3Hasher() Hasher {
	return HasherFunc(func(p []byte) string {
		sum := sha3.Sum256(p)
		return hex.EncodeToString(sum[:])
	})
}

// builtinHashers returns the default hasher registry.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256:  SHA256Hasher(),
		HashSHA512:  SHA512Hasher(),
		HashBLAKE2b: BLAKE2bHasher(),
		HashSHA3:    SHA3Hasher(),
	}
}
