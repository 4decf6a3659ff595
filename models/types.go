// Package models contain needed models
package models

// Framing names accepted by the API and the CLI.
const (
	FramingPrefixed = "prefixed"
	FramingLegacy   = "legacy"
)

// StegoConfig represents configuration for steganography operations
type StegoConfig struct {
	// LegacyFraming embeds the payload with no length prefix; decode then
	// scans every sample of the carrier.
	LegacyFraming bool
	// UseEncryption whitens the payload with an Extended Vigenère cipher
	// keyed by the passphrase.
	UseEncryption bool
}

// EncodeResponse is returned as JSON only when an encode fails; a
// successful encode streams the stego WAV instead.
type EncodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExtractResponse represents the response after extraction
type ExtractResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Secret  string `json:"secret,omitempty"`
}

// CapacityResponse reports how much text a carrier can hold.
type CapacityResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Framing       string         `json:"framing,omitempty"`
	Samples       int            `json:"samples,omitempty"`
	MaxCharacters int            `json:"max_characters"`
	Audio         *AudioMetadata `json:"audio,omitempty"`
}

// AudioMetadata represents metadata about an audio file
type AudioMetadata struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	BitDepth   int     `json:"bit_depth"`
	Frames     int     `json:"frames"`
	Duration   float64 `json:"duration"`
}
