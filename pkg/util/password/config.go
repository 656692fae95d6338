package password

import "github.com/roxydental/roxydental_backend/config"

// Config selects the hashing algorithm and its parameters.
type Config struct {
	Algorithm string // argon2id (default) or bcrypt

	MemoryKiB     uint32
	Iterations    uint32
	Parallelism   uint8
	SaltLength    uint32
	KeyLength     uint32
	LowMemoryMode bool // caps memory at 32 MiB

	BcryptCost int
}

func (c Config) ToParams() *Params {
	memory := c.MemoryKiB
	if c.LowMemoryMode && memory > 32*1024 {
		memory = 32 * 1024
	}
	saltLen, keyLen := c.SaltLength, c.KeyLength
	if saltLen == 0 {
		saltLen = 16
	}
	if keyLen == 0 {
		keyLen = 32
	}

	return &Params{
		Memory:      memory,
		Iterations:  c.Iterations,
		Parallelism: c.Parallelism,
		SaltLength:  saltLen,
		KeyLength:   keyLen,
	}
}

func DefaultConfig() Config {
	return Config{
		Algorithm:   AlgorithmArgon2id,
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
		BcryptCost:  10,
	}
}

// FromCentralConfig converts central config.PasswordConfig to package Config
func FromCentralConfig(c config.PasswordConfig) Config {
	return Config{
		Algorithm:     c.Algorithm,
		MemoryKiB:     c.MemoryKiB,
		Iterations:    c.Iterations,
		Parallelism:   c.Parallelism,
		SaltLength:    c.SaltLength,
		KeyLength:     c.KeyLength,
		LowMemoryMode: c.LowMemoryMode,
		BcryptCost:    c.BcryptCost,
	}
}
