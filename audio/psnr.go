package audio

import (
	"math"
)

// MaxSampleValue is the peak magnitude of a signed 16-bit sample.
const MaxSampleValue = 32767.0

// CalculatePSNR compares two 16-bit sample arrays. Identical signals give +Inf;
// mismatched or empty inputs give 0.
func CalculatePSNR(original, stego []int16) float64 {
	if len(original) != len(stego) || len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(stego[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX / sqrt(MSE))
	return 20 * math.Log10(MaxSampleValue/math.Sqrt(mse))
}

func ValidatePSNR(psnr float64, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true
	}
	return psnr >= threshold
}
