package cipher

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput is returned when text or key can not be ciphered.
var ErrInvalidInput = errors.New("invalid input")

var modulus = big.NewInt(int64(len(Alphabet)))

// ParseKey parses a base 10 integer key of any size.
func ParseKey(s string) (*big.Int, error) {
	n := &big.Int{}
	if _, ok := n.SetString(strings.TrimSpace(s), 10); !ok {
		return nil, fmt.Errorf("%w: key %q is not a whole number", ErrInvalidInput, s)
	}
	return n, nil
}

// CipherBig is like Cipher but takes an arbitrarily large key.
// key is not modified.
func CipherBig(text string, key *big.Int) string {
	rot := big.NewInt(0).Mod(key, modulus) // Euclidean, always in [0, 26)
	return Cipher(text, int(rot.Int64()))
}

// Encode validates text and key and returns the ciphertext.
// All validation failures wrap ErrInvalidInput.
func Encode(text, key string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: text is not valid utf-8", ErrInvalidInput)
	}

	n, err := ParseKey(key)
	if err != nil {
		return "", err
	}

	return CipherBig(text, n), nil
}
