// Package crypto contains the Extended Vigenère cipher used to whiten
// embedded payloads.
package crypto

import (
	"errors"
	"strings"
)

// MaxPassphraseLength bounds the passphrase, which doubles as the cipher key.
const MaxPassphraseLength = 256

var (
	ErrEmptyPassphrase   = errors.New("passphrase cannot be empty")
	ErrPassphraseTooLong = errors.New("passphrase cannot exceed 256 characters")
	ErrPassphraseNewline = errors.New("passphrase cannot contain a newline")
)

// ExtendedVigenere shifts every byte by the matching key byte, modulo 256.
type ExtendedVigenere struct {
	key []byte
}

func NewExtendedVigenere(key string) *ExtendedVigenere {
	return &ExtendedVigenere{
		key: []byte(key),
	}
}

// Encrypt returns a new slice; plaintext is left untouched. An empty key is
// the identity.
func (ev *ExtendedVigenere) Encrypt(plaintext []byte) []byte {
	return ev.shift(plaintext, false)
}

func (ev *ExtendedVigenere) Decrypt(ciphertext []byte) []byte {
	return ev.shift(ciphertext, true)
}

func (ev *ExtendedVigenere) shift(in []byte, reverse bool) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	if len(ev.key) == 0 {
		return out
	}

	for i := range out {
		k := ev.key[i%len(ev.key)]
		// byte arithmetic wraps, which is exactly mod 256
		if reverse {
			out[i] -= k
		} else {
			out[i] += k
		}
	}
	return out
}

// ValidatePassphrase checks a passphrase supplied by a user before it is
// framed into a payload.
func ValidatePassphrase(passphrase string) error {
	switch {
	case passphrase == "":
		return ErrEmptyPassphrase
	case len(passphrase) > MaxPassphraseLength:
		return ErrPassphraseTooLong
	case strings.Contains(passphrase, "\n"):
		return ErrPassphraseNewline
	}
	return nil
}
