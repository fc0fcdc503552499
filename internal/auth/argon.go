package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength        = 16
	derivedKeyLength  = 32
	maxPasswordLength = 1024
)

// HashParams are the argon2id cost settings used for new hashes.
// Verification always uses the settings recorded in the hash itself.
type HashParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

// DefaultHashParams returns the OWASP baseline for argon2id.
func DefaultHashParams() HashParams {
	return HashParams{MemoryKiB: 64 * 1024, Iterations: 3, Parallelism: 4}
}

// Validate rejects settings argon2 cannot run with.
func (p HashParams) Validate() error {
	switch {
	case p.Iterations == 0:
		return errors.New("argon2 iterations must be positive")
	case p.Parallelism == 0:
		return errors.New("argon2 parallelism must be positive")
	case p.MemoryKiB < 8*uint32(p.Parallelism):
		return fmt.Errorf("argon2 memory must be at least %d KiB for parallelism %d", 8*uint32(p.Parallelism), p.Parallelism)
	}
	return nil
}

// Hasher produces and checks PHC-encoded argon2id password hashes.
type Hasher struct {
	params HashParams
}

// NewHasher returns a Hasher using params for new hashes.
func NewHasher(params HashParams) (*Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: params}, nil
}

// Hash returns the encoded hash of password with a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	stored := phcHash{
		params: h.params,
		salt:   salt,
		key:    argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, derivedKeyLength),
	}
	return stored.String(), nil
}

// Verify reports whether password matches encoded.
// Malformed or foreign hashes never match.
func (h *Hasher) Verify(encoded, password string) bool {
	if len(password) > maxPasswordLength {
		return false
	}
	stored, err := parsePHC(encoded)
	if err != nil {
		return false
	}
	p := stored.params
	//nolint:gosec // key length comes from a decoded hash and is small
	candidate := argon2.IDKey([]byte(password), stored.salt, p.Iterations, p.MemoryKiB, p.Parallelism, uint32(len(stored.key)))
	return subtle.ConstantTimeCompare(stored.key, candidate) == 1
}

// phcHash is the decoded form of $argon2id$v=19$m=..,t=..,p=..$salt$key.
type phcHash struct {
	params HashParams
	salt   []byte
	key    []byte
}

func (p phcHash) String() string {
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.params.MemoryKiB, p.params.Iterations, p.params.Parallelism,
		enc.EncodeToString(p.salt), enc.EncodeToString(p.key))
}

func parsePHC(encoded string) (phcHash, error) {
	var out phcHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return out, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return out, fmt.Errorf("unsupported algorithm %q", parts[1])
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return out, fmt.Errorf("unsupported version %q", parts[2])
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &out.params.MemoryKiB, &out.params.Iterations, &out.params.Parallelism); err != nil {
		return out, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := out.params.Validate(); err != nil {
		return out, err
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return out, fmt.Errorf("invalid salt: %w", err)
	}
	if out.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(out.key) == 0 {
		return out, errors.New("invalid key")
	}
	return out, nil
}
