package stego

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded indicates the framed payload needs more samples than the carrier has.
var ErrCapacityExceeded = errors.New("message is too large for the audio carrier")

// ErrIncorrectPassphrase indicates the recovered passphrase did not match the expected one.
var ErrIncorrectPassphrase = errors.New("incorrect passphrase")

// ErrMalformedBitstream indicates a bit sequence or character that cannot be packed or unpacked losslessly.
var ErrMalformedBitstream = errors.New("malformed bitstream")

// ErrCarrierFormat indicates the carrier is not 16-bit uncompressed PCM.
var ErrCarrierFormat = errors.New("unsupported carrier format")

// ErrInvalidPassphrase indicates a passphrase that would make the payload ambiguous.
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// CapacityError reports how many sample slots an encode needed and how many the carrier offered.
type CapacityError struct {
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: required %d samples, available %d samples", ErrCapacityExceeded, e.Required, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

var _ error = (*CapacityError)(nil)
