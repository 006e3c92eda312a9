package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

type (
	// Hasher produces and verifies self-describing argon2 hashes in
	// PHC format:
	//
	//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
	//
	// The parameters ride inside the hash string, so verification
	// works even after the defaults below change.
	Hasher struct {
		time    uint32
		memory  uint32
		threads uint8
		saltLen uint32
		keyLen  uint32
	}

	phcHash struct {
		variant string
		version int
		memory  uint32
		time    uint32
		threads uint8
		salt    []byte
		key     []byte
	}
)

const (
	maxMemoryCost = 1 << 21 // 2GB, in KB
	maxTimeCost   = 64
)

// defaults used by all new hashes, 64MB over 3 passes
var std = NewHasher()

func NewHasher() Hasher {
	return Hasher{
		time:    3,
		memory:  64 * 1024,
		threads: 4,
		saltLen: 16,
		keyLen:  32,
	}
}

// Hash derives an argon2id hash of secret under a fresh random salt.
// Two calls with the same secret produce different strings, use Verify
// to compare.
func (h Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: unable to generate salt, cause %w", err)
	}
	key := argon2.IDKey([]byte(secret), salt, h.time, h.memory, h.threads, h.keyLen)
	return fmt.Sprintf("$argon2id$v=%v$m=%v,t=%v,p=%v$%v$%v",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether secret matches hash. Empty secrets never
// match, and empty, truncated or otherwise malformed hash strings are
// a mismatch rather than an error: callers should not be able to tell
// a wrong password apart from a broken configuration.
func (h Hasher) Verify(secret, hash string) bool {
	if len(secret) == 0 || len(hash) == 0 {
		return false
	}
	p, ok := decodePHC(hash)
	if !ok {
		return false
	}
	var key []byte
	switch p.variant {
	case "argon2id":
		key = argon2.IDKey([]byte(secret), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	case "argon2i":
		key = argon2.Key([]byte(secret), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	default:
		// argon2d and future variants are not supported by the backend
		return false
	}
	return subtle.ConstantTimeCompare(key, p.key) == 1
}

func decodePHC(hash string) (phcHash, bool) {
	// $variant$v=19$m=...,t=...,p=...$salt$key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return phcHash{}, false
	}
	var p phcHash
	p.variant = parts[1]
	if _, err := fmt.Sscanf(parts[2], "v=%d", &p.version); err != nil {
		return phcHash{}, false
	}
	if p.version != argon2.Version {
		return phcHash{}, false
	}
	costs := strings.Split(parts[3], ",")
	if len(costs) != 3 {
		return phcHash{}, false
	}
	for _, c := range costs {
		kv := strings.SplitN(c, "=", 2)
		if len(kv) != 2 {
			return phcHash{}, false
		}
		val, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil {
			return phcHash{}, false
		}
		switch kv[0] {
		case "m":
			p.memory = uint32(val)
		case "t":
			p.time = uint32(val)
		case "p":
			if val > 255 {
				return phcHash{}, false
			}
			p.threads = uint8(val)
		default:
			return phcHash{}, false
		}
	}
	// the backend panics below these minimums, and hash strings reach
	// this point straight from client cookies, so cap the costs too:
	// a hostile cookie must not make verification allocate gigabytes
	if p.time == 0 || p.threads == 0 || p.memory < 8*uint32(p.threads) {
		return phcHash{}, false
	}
	if p.memory > maxMemoryCost || p.time > maxTimeCost {
		return phcHash{}, false
	}
	var err error
	p.salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return phcHash{}, false
	}
	p.key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(p.key) == 0 {
		return phcHash{}, false
	}
	return p, true
}
