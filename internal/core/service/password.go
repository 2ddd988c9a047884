package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// Argon2id parameters used by HashPassword.
const (
	Argon2Time        uint32 = 2
	Argon2Memory      uint32 = 16384
	Argon2Parallelism uint8  = 2
	Argon2KeyLen      uint32 = 32
	Argon2SaltLen            = 16
)

// PasswordVerifier checks a presented password.
type PasswordVerifier interface {
	Verify(password string) bool
}

// Verifier holds one parsed Argon2id hash.
type Verifier struct {
	salt    []byte
	hash    []byte
	time    uint32
	memory  uint32
	threads uint8
}

// HashPassword computes an Argon2id hash of password with a random salt.
// Format: $argon2id$v=19$m=16384,t=2,p=2$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Time, Argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// NewVerifier parses an encoded Argon2id hash.
func NewVerifier(encoded string) (*Verifier, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("expected 5 '$'-separated fields")
	}
	if parts[1] != "argon2id" {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("unsupported algorithm " + parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("bad version field").WithCause(err)
	}
	if version != argon2.Version {
		return nil, domain.ErrInvalidPasswordHash.WithDetails(fmt.Sprintf("unsupported version %d", version))
	}

	v := &Verifier{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &v.memory, &v.time, &v.threads); err != nil {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("bad parameter field").WithCause(err)
	}
	if v.memory == 0 || v.time == 0 || v.threads == 0 {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("zero cost parameter")
	}

	var err error
	if v.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("bad salt").WithCause(err)
	}
	if v.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("bad hash").WithCause(err)
	}
	if len(v.hash) == 0 {
		return nil, domain.ErrInvalidPasswordHash.WithDetails("empty hash")
	}

	return v, nil
}

// NewPasswordVerifier hashes a plaintext password and returns its verifier.
func NewPasswordVerifier(password string) (*Verifier, error) {
	encoded, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewVerifier(encoded)
}

// Verify reports whether password matches. The comparison runs in
// constant time with respect to the stored hash.
func (v *Verifier) Verify(password string) bool {
	computed := argon2.IDKey([]byte(password), v.salt, v.time, v.memory, v.threads, uint32(len(v.hash)))
	return subtle.ConstantTimeCompare(computed, v.hash) == 1
}
