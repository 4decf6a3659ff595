package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtendedVigenereRoundTrip(t *testing.T) {
	plaintext := []byte("hello\nworld \x00\xff")
	cipher := NewExtendedVigenere("key")

	ciphertext := cipher.Encrypt(plaintext)
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}
	if got := cipher.Decrypt(ciphertext); !bytes.Equal(got, plaintext) {
		t.Errorf("round trip mismatch: want %v, got %v", plaintext, got)
	}
}

func TestExtendedVigenereWraps(t *testing.T) {
	cipher := NewExtendedVigenere("\x02")
	got := cipher.Encrypt([]byte{0xFF, 0x00})
	want := []byte{0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestExtendedVigenereDoesNotModifyInput(t *testing.T) {
	in := []byte("abc")
	NewExtendedVigenere("k").Encrypt(in)
	if string(in) != "abc" {
		t.Errorf("input modified: %q", in)
	}
}

func TestExtendedVigenereEmptyKey(t *testing.T) {
	in := []byte("abc")
	if got := NewExtendedVigenere("").Encrypt(in); !bytes.Equal(got, in) {
		t.Errorf("empty key should be the identity, got %q", got)
	}
}

func TestValidatePassphrase(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		want       error
	}{
		{name: "ok", passphrase: "pw", want: nil},
		{name: "empty", passphrase: "", want: ErrEmptyPassphrase},
		{name: "too long", passphrase: strings.Repeat("a", MaxPassphraseLength+1), want: ErrPassphraseTooLong},
		{name: "max length", passphrase: strings.Repeat("a", MaxPassphraseLength), want: nil},
		{name: "newline", passphrase: "pass\nword", want: ErrPassphraseNewline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassphrase(tt.passphrase); !errors.Is(err, tt.want) {
				t.Errorf("want %v, got %v", tt.want, err)
			}
		})
	}
}
