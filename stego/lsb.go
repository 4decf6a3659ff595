// Package stego implements LSB steganography over signed 16-bit PCM samples.
package stego

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"wav-steganography/crypto"
	"wav-steganography/models"
)

const (
	// Separator joins the message and the passphrase inside the payload.
	Separator = "\n"
	// HeaderBits is the width of the bit-count prefix used by length-prefixed framing.
	HeaderBits = 32
)

// LSBCodec embeds and extracts payloads one bit per sample. It holds only
// immutable options and is safe for concurrent use.
type LSBCodec struct {
	config models.StegoConfig
}

// NewLSBCodec returns a codec for config. A nil config selects
// length-prefixed framing without payload encryption.
func NewLSBCodec(config *models.StegoConfig) *LSBCodec {
	codec := &LSBCodec{}
	if config != nil {
		codec.config = *config
	}
	return codec
}

var defaultCodec = NewLSBCodec(nil)

// Encode embeds message and passphrase into carrier using the default codec.
func Encode(carrier *Carrier, message, passphrase string) (*Carrier, error) {
	return defaultCodec.Encode(carrier, message, passphrase)
}

// Decode recovers the message from carrier using the default codec.
func Decode(carrier *Carrier, passphrase string) (string, error) {
	return defaultCodec.Decode(carrier, passphrase)
}

func (c *LSBCodec) headerBits() int {
	if c.config.LegacyFraming {
		return 0
	}
	return HeaderBits
}

// Capacity returns how many payload characters (message, separator and
// passphrase together) fit in carrier under this codec's framing.
func (c *LSBCodec) Capacity(carrier *Carrier) int {
	if carrier == nil {
		return 0
	}
	slots := len(carrier.Samples) - c.headerBits()
	if slots < 0 {
		return 0
	}
	return slots / BitsInByte
}

// RequiredSamples returns the number of samples an encode of message and
// passphrase would touch.
func (c *LSBCodec) RequiredSamples(message, passphrase string) (int, error) {
	bits, err := Pack(message + Separator + passphrase)
	if err != nil {
		return 0, err
	}
	return c.headerBits() + len(bits), nil
}

// Encode returns a new carrier whose leading samples carry
// message + "\n" + passphrase in their least-significant bits. The input
// carrier is never modified; on any error no carrier is returned.
func (c *LSBCodec) Encode(carrier *Carrier, message, passphrase string) (*Carrier, error) {
	if carrier == nil {
		return nil, fmt.Errorf("%w: no carrier", ErrCarrierFormat)
	}
	if err := c.checkPassphrase(passphrase); err != nil {
		return nil, err
	}

	bits, err := Pack(message + Separator + passphrase)
	if err != nil {
		return nil, err
	}

	if c.config.UseEncryption {
		data, err := UnpackBytes(bits)
		if err != nil {
			return nil, err
		}
		bits = PackBytes(crypto.NewExtendedVigenere(passphrase).Encrypt(data))
	}

	framed, err := c.frame(bits)
	if err != nil {
		return nil, err
	}

	// All-or-nothing: nothing is copied or mutated until the payload is known to fit.
	if err := CheckCapacity(len(carrier.Samples), len(framed)); err != nil {
		return nil, err
	}

	stego := carrier.Clone()
	for i, bit := range framed {
		stego.Samples[i] = setLSB(stego.Samples[i], bit)
	}
	return stego, nil
}

// checkPassphrase rejects passphrases the framing cannot verify. Legacy
// decoding matches the passphrase as a prefix of the tail, which an empty
// passphrase would always satisfy.
func (c *LSBCodec) checkPassphrase(passphrase string) error {
	if strings.Contains(passphrase, Separator) {
		return fmt.Errorf("%w: must not contain a newline", ErrInvalidPassphrase)
	}
	if c.config.LegacyFraming && passphrase == "" {
		return fmt.Errorf("%w: legacy framing requires a non-empty passphrase", ErrInvalidPassphrase)
	}
	return nil
}

func (c *LSBCodec) frame(bits Bitstream) (Bitstream, error) {
	if c.config.LegacyFraming {
		return bits, nil
	}
	if uint64(len(bits)) > math.MaxUint32 {
		return nil, &CapacityError{Required: HeaderBits + len(bits), Available: math.MaxInt32}
	}

	header := PackBytes(binary.BigEndian.AppendUint32(nil, uint32(len(bits))))
	framed := make(Bitstream, 0, len(header)+len(bits))
	framed = append(framed, header...)
	return append(framed, bits...), nil
}

// Decode extracts the payload from carrier and returns the message when the
// embedded passphrase matches passphrase. On a mismatch the message is
// discarded and ErrIncorrectPassphrase is returned.
func (c *LSBCodec) Decode(carrier *Carrier, passphrase string) (string, error) {
	if carrier == nil {
		return "", fmt.Errorf("%w: no carrier", ErrCarrierFormat)
	}
	if err := c.checkPassphrase(passphrase); err != nil {
		return "", err
	}

	bits, err := c.extract(carrier.Samples)
	if err != nil {
		return "", err
	}

	data, err := UnpackBytes(bits)
	if err != nil {
		return "", err
	}
	if c.config.UseEncryption {
		data = crypto.NewExtendedVigenere(passphrase).Decrypt(data)
	}

	message, ok := c.split(decodeChars(data), passphrase)
	if !ok {
		return "", ErrIncorrectPassphrase
	}
	return message, nil
}

func (c *LSBCodec) extract(samples []int16) (Bitstream, error) {
	if c.config.LegacyFraming {
		// No length field: read every whole byte the carrier holds.
		n := len(samples) - len(samples)%BitsInByte
		return readBits(samples[:n]), nil
	}

	if len(samples) < HeaderBits {
		return nil, fmt.Errorf("%w: carrier has %d samples, header needs %d", ErrMalformedBitstream, len(samples), HeaderBits)
	}
	header, err := UnpackBytes(readBits(samples[:HeaderBits]))
	if err != nil {
		return nil, err
	}

	declared := uint64(binary.BigEndian.Uint32(header))
	available := uint64(len(samples) - HeaderBits)
	if declared%BitsInByte != 0 || declared > available {
		return nil, fmt.Errorf("%w: header declares %d bits, carrier holds %d", ErrMalformedBitstream, declared, available)
	}
	return readBits(samples[HeaderBits : HeaderBits+int(declared)]), nil
}

// split separates the message from the embedded passphrase and reports
// whether the passphrase is the expected one. The passphrase never contains
// a newline, so in a length-prefixed payload the last newline is the
// separator. Legacy payloads run on into carrier noise with no terminator;
// there the separator is the first newline followed by the expected
// passphrase, unless the payload fills the carrier exactly and the text ends
// with the separator and the passphrase.
func (c *LSBCodec) split(text, passphrase string) (string, bool) {
	if !c.config.LegacyFraming {
		i := strings.LastIndex(text, Separator)
		if i < 0 || text[i+len(Separator):] != passphrase {
			return "", false
		}
		return text[:i], true
	}

	if tail := Separator + passphrase; strings.HasSuffix(text, tail) {
		return strings.TrimSuffix(text, tail), true
	}
	for offset := 0; ; {
		i := strings.Index(text[offset:], Separator)
		if i < 0 {
			return "", false
		}
		i += offset
		if strings.HasPrefix(text[i+len(Separator):], passphrase) {
			return text[:i], true
		}
		offset = i + len(Separator)
	}
}

func readBits(samples []int16) Bitstream {
	bits := make(Bitstream, len(samples))
	for i, s := range samples {
		bits[i] = lsb(s)
	}
	return bits
}
