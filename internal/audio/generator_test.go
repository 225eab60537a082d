package audio

import (
	"math"
	"testing"
)

func TestOscillatorStaysInRange(t *testing.T) {
	for _, wave := range []int{waveSine, waveSquare, waveSaw, waveNoise} {
		buf := oscillator(wave, 440, samples(0.05))
		for i, v := range buf {
			if v < -1.0001 || v > 1.0001 {
				t.Fatalf("wave %d sample %d out of range: %v", wave, i, v)
			}
		}
	}
}

func TestEnvelopeTapersEnds(t *testing.T) {
	buf := oscillator(waveSquare, 200, samples(0.1))
	applyEnvelope(buf, 0.02, 0.02)

	if math.Abs(buf[0]) > 0.01 {
		t.Errorf("attack start not silent: %v", buf[0])
	}
	if math.Abs(buf[len(buf)-1]) > 0.1 {
		t.Errorf("release end not tapered: %v", buf[len(buf)-1])
	}
}

func TestMixClips(t *testing.T) {
	a := oscillator(waveSquare, 100, 256)
	b := oscillator(waveSquare, 100, 256)
	out := mix(a, b)
	for i, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d not clipped: %v", i, v)
		}
	}
}

func TestNilBankIsSilentPlayer(t *testing.T) {
	// The session treats a nil bank as "no audio"; every method must be
	// safe to call.
	var b *Bank
	b.Melee()
	b.Impact()
	b.Launch()
	b.Rebound()
	b.Detonate()
	b.Death()
}
