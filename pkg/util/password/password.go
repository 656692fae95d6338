// Package password hashes staff passwords with argon2id or bcrypt and
// verifies either format, so accounts imported with bcrypt hashes keep working.
package password

import "errors"

var (
	ErrInvalidHash         = errors.New("invalid password hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	ErrMismatch            = errors.New("password does not match")
)

const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Hasher produces hashes with the configured algorithm.
type Hasher struct {
	algorithm  string
	params     *Params
	bcryptCost int
}

func NewHasher(cfg Config) *Hasher {
	h := &Hasher{algorithm: cfg.Algorithm, bcryptCost: cfg.BcryptCost}
	if h.algorithm == "" {
		h.algorithm = AlgorithmArgon2id
	}
	if cfg.MemoryKiB == 0 || cfg.Iterations == 0 || cfg.Parallelism == 0 {
		h.params = DefaultParams()
		if cfg.LowMemoryMode {
			h.params = LowMemoryParams()
		}
	} else {
		h.params = cfg.ToParams()
	}
	return h
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmBcrypt {
		return hashBcrypt(password, h.bcryptCost)
	}
	return hashArgon2id(password, h.params)
}

// Verify accepts hashes in either supported format. It returns ErrMismatch
// for a wrong password and ErrInvalidHash for anything it cannot parse.
func (h *Hasher) Verify(encoded, password string) error {
	if isBcrypt(encoded) {
		return verifyBcrypt(encoded, password)
	}
	return verifyArgon2id(encoded, password)
}

// NeedsRehash reports whether encoded was produced with another algorithm or parameters.
func (h *Hasher) NeedsRehash(encoded string) bool {
	if h.algorithm == AlgorithmBcrypt {
		return !isBcrypt(encoded) || bcryptCost(encoded) != h.bcryptCostOrDefault()
	}
	p, _, _, err := decodeArgon2id(encoded)
	if err != nil {
		return true
	}
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism ||
		p.KeyLength != h.params.KeyLength
}

func (h *Hasher) bcryptCostOrDefault() int {
	if h.bcryptCost <= 0 {
		return 10
	}
	return h.bcryptCost
}
