package audio

import (
	"math"
	"math/rand"
)

// Waveform types for the synthesizer.
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain.
type floatBuffer []float64

// oscillator generates raw waveform samples at the given frequency.
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweep generates a sine whose frequency glides from f0 to f1.
func sweep(f0, f1 float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := f0 + (f1-f0)*t
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(sampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(sampleRate))
	releaseSamples := int(releaseSec * float64(sampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		gain := 1.0
		if i < attackSamples && attackSamples > 0 {
			gain = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			gain = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= gain
	}
}

// mix sums buffers sample-wise, clipping to [-1, 1].
func mix(bufs ...floatBuffer) floatBuffer {
	longest := 0
	for _, b := range bufs {
		if len(b) > longest {
			longest = len(b)
		}
	}
	out := make(floatBuffer, longest)
	for _, b := range bufs {
		for i, v := range b {
			out[i] += v
		}
	}
	for i, v := range out {
		if v > 1 {
			out[i] = 1
		} else if v < -1 {
			out[i] = -1
		}
	}
	return out
}

// gain scales a buffer in place and returns it.
func (b floatBuffer) gain(g float64) floatBuffer {
	for i := range b {
		b[i] *= g
	}
	return b
}
