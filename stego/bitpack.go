package stego

import (
	"fmt"
)

// BitsInByte is the number of carrier samples consumed per payload character.
const BitsInByte = 8

// Bitstream holds one bit per element (0 or 1), most-significant bit of each
// character first.
type Bitstream []uint8

// Pack converts payload into a Bitstream. Every character must be a code
// point in 0..255; anything wider cannot be expressed in 8 bits.
func Pack(payload string) (Bitstream, error) {
	data := make([]byte, 0, len(payload))
	i := 0
	for _, r := range payload {
		if r < 0 || r > 0xFF {
			return nil, fmt.Errorf("%w: character %q at index %d is outside the 0-255 range", ErrMalformedBitstream, r, i)
		}
		data = append(data, byte(r))
		i++
	}
	return PackBytes(data), nil
}

// PackBytes expands raw bytes into a Bitstream.
func PackBytes(data []byte) Bitstream {
	bits := make(Bitstream, len(data)*BitsInByte)
	for i, b := range data {
		offset := i * BitsInByte
		for j := range BitsInByte {
			bits[offset+j] = (b >> (7 - j)) & 1
		}
	}
	return bits
}

// Unpack is the inverse of Pack. Each byte maps back to the code point of
// the same value.
func Unpack(bits Bitstream) (string, error) {
	data, err := UnpackBytes(bits)
	if err != nil {
		return "", err
	}
	return decodeChars(data), nil
}

func decodeChars(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// UnpackBytes regroups bits into bytes. A length that is not a multiple of
// eight is an error rather than a silent truncation.
func UnpackBytes(bits Bitstream) ([]byte, error) {
	if len(bits)%BitsInByte != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a multiple of %d", ErrMalformedBitstream, len(bits), BitsInByte)
	}

	data := make([]byte, len(bits)/BitsInByte)
	for i := range data {
		var b byte
		for j := range BitsInByte {
			bit := bits[i*BitsInByte+j]
			if bit > 1 {
				return nil, fmt.Errorf("%w: bit %d has value %d", ErrMalformedBitstream, i*BitsInByte+j, bit)
			}
			b = (b << 1) | bit
		}
		data[i] = b
	}
	return data, nil
}

// CheckCapacity fails when bitLen bits cannot fit one per sample.
func CheckCapacity(sampleCount, bitLen int) error {
	if bitLen > sampleCount {
		return &CapacityError{Required: bitLen, Available: sampleCount}
	}
	return nil
}
