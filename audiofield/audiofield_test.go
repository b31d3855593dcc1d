package audiofield

import "testing"

func TestReverbMixClamps(t *testing.T) {
	if got := ReverbMix(0, 0, 10); got != 0.05 {
		t.Errorf("expected baseline 0.05 wetness for a perfectly straight path, got %v", got)
	}
	if got := ReverbMix(1000, 0, 10); got != 1 {
		t.Errorf("expected clamp to 1 for a wildly indirect path, got %v", got)
	}
	if got := ReverbMix(-1000, 0, 10); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
}
