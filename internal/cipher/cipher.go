// Package cipher implements a Caesar cipher over the uppercase Latin alphabet.
//
// Letters are uppercased and shifted by the key, spaces are kept and every
// other character is dropped from the output.
package cipher

import (
	"strings"
	"unicode"
)

// Alphabet is the ordered set of symbols the cipher shifts over.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// shift returns the alphabet index x moved by key positions.
// The result is always in [0, len(Alphabet)), including for negative keys.
func shift(x, key int) int {
	n := len(Alphabet)
	key %= n
	return ((x+key)%n + n) % n
}

// Cipher shifts every letter of text by key positions in Alphabet.
//
// Input is uppercased rune by rune. Spaces are copied as is; runes that are
// neither a space nor a letter of Alphabet are dropped.
func Cipher(text string, key int) string {
	out := &strings.Builder{}
	out.Grow(len(text))

	for _, r := range text {
		u := unicode.ToUpper(r)

		if u == ' ' {
			out.WriteByte(' ')
		}

		// Not an else branch: a space never matches the scan below.
		for x := 0; x < len(Alphabet); x++ {
			if rune(Alphabet[x]) == u {
				out.WriteByte(Alphabet[shift(x, key)])
			}
		}
	}
	return out.String()
}
