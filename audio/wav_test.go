package audio_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"

	stegoaudio "wav-steganography/audio"
	"wav-steganography/stego"
)

func testCarrier(numChannels, frames int) *stego.Carrier {
	samples := make([]int16, numChannels*frames)
	for i := range samples {
		samples[i] = int16((i*7919)%65536 - 32768)
	}
	return stego.NewCarrier(samples, numChannels, 22050)
}

func TestWriteLoadWAV(t *testing.T) {
	tests := []struct {
		name     string
		channels int
	}{
		{name: "mono", channels: 1},
		{name: "stereo", channels: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "carrier.wav")
			want := testCarrier(tt.channels, 1000)

			if err := stegoaudio.WriteWAVFile(path, want); err != nil {
				t.Fatalf("WriteWAVFile returned error: %v", err)
			}

			got, err := stegoaudio.LoadWAV(path)
			if err != nil {
				t.Fatalf("LoadWAV returned error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("carrier mismatch (-want +got):\n%s", diff)
			}
			if got.Format.NumFrames != 1000 {
				t.Errorf("expected 1000 frames, got %d", got.Format.NumFrames)
			}
		})
	}
}

func TestEncodeParseWAVWithPayload(t *testing.T) {
	carrier := testCarrier(2, 2000)

	encoded, err := stego.Encode(carrier, "meet at noon", "pw")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	data, err := stegoaudio.EncodeWAV(encoded)
	if err != nil {
		t.Fatalf("EncodeWAV returned error: %v", err)
	}

	parsed, err := stegoaudio.ParseWAV(data)
	if err != nil {
		t.Fatalf("ParseWAV returned error: %v", err)
	}
	if diff := cmp.Diff(encoded, parsed); diff != "" {
		t.Errorf("carrier changed through WAV (-want +got):\n%s", diff)
	}

	message, err := stego.Decode(parsed, "pw")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if message != "meet at noon" {
		t.Errorf("want %q, got %q", "meet at noon", message)
	}
}

func writeRawWAV(t *testing.T, bitDepth int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create WAV file: %v", err)
	}
	defer f.Close()

	data := make([]int, 800)
	for i := range data {
		data[i] = i % 100
	}

	encoder := wav.NewEncoder(f, 8000, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   data,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("Failed to write WAV: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("Failed to close WAV encoder: %v", err)
	}
	return path
}

func TestLoadWAVRejectsUnsupportedBitDepth(t *testing.T) {
	for _, depth := range []int{8, 24, 32} {
		path := writeRawWAV(t, depth)
		if _, err := stegoaudio.LoadWAV(path); !errors.Is(err, stego.ErrCarrierFormat) {
			t.Errorf("%d-bit: expected ErrCarrierFormat, got %v", depth, err)
		}
	}
}

func TestParseWAVRejectsGarbage(t *testing.T) {
	if _, err := stegoaudio.ParseWAV([]byte("definitely not a RIFF/WAVE container")); !errors.Is(err, stego.ErrCarrierFormat) {
		t.Errorf("expected ErrCarrierFormat, got %v", err)
	}
}

func TestLoadWAVMissingFile(t *testing.T) {
	if _, err := stegoaudio.LoadWAV(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestWriteWAVFileRejectsInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	carrier := testCarrier(1, 10)
	carrier.Format.BitDepth = 8

	if err := stegoaudio.WriteWAVFile(path, carrier); !errors.Is(err, stego.ErrCarrierFormat) {
		t.Fatalf("expected ErrCarrierFormat, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no output file, stat returned %v", err)
	}
}

func TestMetadata(t *testing.T) {
	meta := stegoaudio.Metadata(testCarrier(2, 22050))
	if meta.Channels != 2 || meta.Frames != 22050 || meta.BitDepth != 16 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Duration != 1.0 {
		t.Errorf("expected 1s duration, got %f", meta.Duration)
	}
}
