package stego

// Format holds the container parameters that must be echoed unchanged into
// any output carrier.
type Format struct {
	NumChannels int
	SampleRate  int
	BitDepth    int
	NumFrames   int
}

// Carrier is a flat, interleaved array of signed 16-bit PCM samples.
type Carrier struct {
	Format  Format
	Samples []int16
}

// NewCarrier builds a 16-bit carrier and derives the frame count from the
// sample count.
func NewCarrier(samples []int16, numChannels, sampleRate int) *Carrier {
	frames := 0
	if numChannels > 0 {
		frames = len(samples) / numChannels
	}
	return &Carrier{
		Format: Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
			BitDepth:    16,
			NumFrames:   frames,
		},
		Samples: samples,
	}
}

// Clone returns a deep copy so the result never aliases the receiver's samples.
func (c *Carrier) Clone() *Carrier {
	samples := make([]int16, len(c.Samples))
	copy(samples, c.Samples)
	return &Carrier{Format: c.Format, Samples: samples}
}

func setLSB(sample int16, bit uint8) int16 {
	return int16(uint16(sample)&^1 | uint16(bit&1))
}

func lsb(sample int16) uint8 {
	return uint8(uint16(sample) & 1)
}
