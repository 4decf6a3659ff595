package audio

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateOutputName(t *testing.T) {
	now := time.Unix(1700000000, 123456789)

	name := GenerateOutputName(now, ".wav")
	if !regexp.MustCompile(`^[0-9a-f]{10}\.wav$`).MatchString(name) {
		t.Errorf("unexpected name %q", name)
	}
	if again := GenerateOutputName(now, ".wav"); again != name {
		t.Errorf("expected a stable name, got %q and %q", name, again)
	}
	if other := GenerateOutputName(now.Add(time.Millisecond), ".wav"); other == name {
		t.Errorf("expected different timestamps to give different names, both %q", name)
	}
}
