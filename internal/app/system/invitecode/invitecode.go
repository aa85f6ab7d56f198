// internal/app/system/invitecode/invitecode.go

// Package invitecode generates invitation codes.
package invitecode

import "crypto/rand"

// Alphabet is the character set invitation codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the fixed code length.
const Length = 8

// New returns a random code: Length characters uniform over Alphabet.
// Codes are not checked against existing invitations at generation time;
// the unique index on the invitations collection surfaces the (36^-8
// likely) collision as a duplicate-key error at insert.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf), nil
}

// Valid reports whether s has the shape of a generated code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
