package provision

import (
	"crypto/rand"
	"math/big"
)

// DefaultPasswordLength is the password length used when none is configured.
const DefaultPasswordLength = 14

// passwordCharset is the full population passwords are drawn from. A draw
// guarantees nothing about per-class coverage; callers that require a digit
// or a symbol to be present must post-validate.
const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!@#$%^&*()-_=+[]{}<>?"

// GeneratePassword returns a random password of the given length drawn from
// passwordCharset, using a cryptographically secure source. A non-positive
// length falls back to DefaultPasswordLength.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	population := big.NewInt(int64(len(passwordCharset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, population)
		if err != nil {
			return "", ErrInternal("secure random source unavailable").WithCause(err)
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}
