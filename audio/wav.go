// Package audio reads and writes the PCM carriers used by the codec.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"wav-steganography/models"
	"wav-steganography/stego"
)

const (
	BitDepth = 16

	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// LoadWAV reads the whole carrier at path into memory.
func LoadWAV(path string) (*stego.Carrier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadWAV(f)
}

// ParseWAV reads a carrier from an in-memory WAV file.
func ParseWAV(data []byte) (*stego.Carrier, error) {
	return ReadWAV(bytes.NewReader(data))
}

// ReadWAV decodes a 16-bit PCM WAV stream into a flat sample array. Any
// other container or encoding is rejected with stego.ErrCarrierFormat.
func ReadWAV(r io.ReadSeeker) (*stego.Carrier, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", stego.ErrCarrierFormat)
	}

	if decoder.WavAudioFormat != wavFormatPCM && decoder.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV audio format %d is not uncompressed PCM", stego.ErrCarrierFormat, decoder.WavAudioFormat)
	}
	if decoder.BitDepth != BitDepth {
		return nil, fmt.Errorf("%w: %d-bit samples, only %d-bit PCM is supported", stego.ErrCarrierFormat, decoder.BitDepth, BitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PCM data: %v", stego.ErrCarrierFormat, err)
	}

	numChans := int(decoder.NumChans)
	if len(buf.Data)%numChans != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels", stego.ErrCarrierFormat, len(buf.Data), numChans)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	return stego.NewCarrier(samples, numChans, int(decoder.SampleRate)), nil
}

// WriteWAV encodes carrier with its original format parameters.
func WriteWAV(w io.WriteSeeker, carrier *stego.Carrier) error {
	if err := validateFormat(carrier); err != nil {
		return err
	}

	data := make([]int, len(carrier.Samples))
	for i, s := range carrier.Samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: carrier.Format.NumChannels,
			SampleRate:  carrier.Format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: carrier.Format.BitDepth,
	}

	encoder := wav.NewEncoder(w, carrier.Format.SampleRate, carrier.Format.BitDepth, carrier.Format.NumChannels, wavFormatPCM)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close WAV encoder: %w", err)
	}
	return nil
}

// WriteWAVFile writes carrier to path. A partially written file is removed
// so a failed encode never leaves output behind.
func WriteWAVFile(path string, carrier *stego.Carrier) (err error) {
	if err := validateFormat(carrier); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return WriteWAV(f, carrier)
}

// EncodeWAV renders carrier as WAV bytes. wav.NewEncoder needs a
// WriteSeeker, so the data goes through a temporary file.
func EncodeWAV(carrier *stego.Carrier) ([]byte, error) {
	tempFile, err := os.CreateTemp("", "stego_*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := WriteWAV(tempFile, carrier); err != nil {
		return nil, err
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind WAV data: %w", err)
	}
	wavData, err := io.ReadAll(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}
	return wavData, nil
}

// Metadata summarises a carrier for API responses.
func Metadata(carrier *stego.Carrier) *models.AudioMetadata {
	f := carrier.Format
	meta := &models.AudioMetadata{
		SampleRate: f.SampleRate,
		Channels:   f.NumChannels,
		BitDepth:   f.BitDepth,
		Frames:     f.NumFrames,
	}
	if f.SampleRate > 0 {
		meta.Duration = float64(f.NumFrames) / float64(f.SampleRate)
	}
	return meta
}

func validateFormat(carrier *stego.Carrier) error {
	if carrier == nil {
		return fmt.Errorf("%w: no carrier", stego.ErrCarrierFormat)
	}
	f := carrier.Format
	switch {
	case f.BitDepth != BitDepth:
		return fmt.Errorf("%w: cannot write %d-bit samples", stego.ErrCarrierFormat, f.BitDepth)
	case f.NumChannels < 1:
		return fmt.Errorf("%w: invalid channel count %d", stego.ErrCarrierFormat, f.NumChannels)
	case f.SampleRate < 1:
		return fmt.Errorf("%w: invalid sample rate %d", stego.ErrCarrierFormat, f.SampleRate)
	case len(carrier.Samples)%f.NumChannels != 0:
		return fmt.Errorf("%w: %d samples do not divide into %d channels", stego.ErrCarrierFormat, len(carrier.Samples), f.NumChannels)
	}
	return nil
}
