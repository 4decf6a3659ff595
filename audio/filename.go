package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

const outputNameLength = 10

// GenerateOutputName derives a short opaque file name from a timestamp, for
// callers that do not choose an output path themselves.
func GenerateOutputName(now time.Time, ext string) string {
	stamp := strconv.FormatFloat(float64(now.UnixNano())/1e9, 'f', -1, 64)
	sum := sha256.Sum256([]byte(stamp))
	return hex.EncodeToString(sum[:])[:outputNameLength] + ext
}
