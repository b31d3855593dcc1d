package audiofield

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const previewSampleRate = beep.SampleRate(44100)

// toneGenerator streams a sine tone scaled by a fixed gain, following the
// teacher's hand-rolled generator pattern (audio/sound_manager.go's
// BuzzGenerator/WhroomGenerator: a small struct tracking sample position,
// implementing beep.Streamer directly rather than composing effects).
type toneGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		v := g.gain * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}

// PreviewTone plays a short sine tone whose volume is scaled down as
// wetMix rises, a debug aid for ReverbMix output: wetMix near 0 sounds
// dry/close, near 1 sounds distant/occluded.
func PreviewTone(freqHz float64, wetMix float32, duration time.Duration) error {
	if err := speaker.Init(previewSampleRate, previewSampleRate.N(time.Second/10)); err != nil {
		return err
	}

	gen := &toneGenerator{
		sr:   previewSampleRate,
		freq: freqHz,
		gain: 1.0 - 0.7*float64(clamp01(wetMix)),
	}
	tone := beep.Take(previewSampleRate.N(duration), gen)

	done := make(chan struct{})
	speaker.Play(beep.Seq(tone, beep.Callback(func() { close(done) })))
	<-done
	return nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
