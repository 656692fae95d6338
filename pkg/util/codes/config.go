package codes

import "github.com/roxydental/roxydental_backend/config"

const defaultTokenBytes = 32

// Encoding is the textual form of a reset token.
type Encoding uint8

const (
	EncodingBase64URL Encoding = iota
	EncodingHex
)

// Config is the zero-value-usable generator setup: 32 random bytes rendered
// as unpadded base64url.
type Config struct {
	Bytes    int
	Encoding Encoding
}

func DefaultConfig() Config {
	return Config{Bytes: defaultTokenBytes}
}

func FromCentralConfig(c config.CodesConfig) Config {
	cfg := Config{Bytes: c.TokenByteLength}
	if !c.URLSafeTokens {
		cfg.Encoding = EncodingHex
	}
	return cfg
}
