// Package audio provides synthesized hit-feedback sounds for the VS games.
// All effects are short waveforms generated at startup and mixed through a
// single speaker; no sample assets are loaded from disk. A nil *Bank is a
// valid silent player, so headless runs and tests skip audio entirely.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Bank holds the pre-rendered effect buffers and the shared mixer.
type Bank struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	melee    []*beep.Buffer // small variations picked round-robin
	meleeIdx int
	impact   *beep.Buffer
	launch   *beep.Buffer
	rebound  *beep.Buffer
	detonate *beep.Buffer
	death    *beep.Buffer
}

// NewBank renders all effect buffers. The speaker is not touched until
// Initialize is called.
func NewBank() *Bank {
	b := &Bank{mixer: &beep.Mixer{}}

	// Three melee thumps at slightly different pitches so repeated hits
	// don't sound machine-gunned.
	for _, freq := range []float64{180, 210, 160} {
		buf := mix(
			oscillator(waveSine, freq, samples(0.09)),
			oscillator(waveNoise, 0, samples(0.03)).gain(0.25),
		)
		applyEnvelope(buf, 0.002, 0.06)
		b.melee = append(b.melee, render(buf.gain(0.6)))
	}

	impact := oscillator(waveNoise, 0, samples(0.05))
	applyEnvelope(impact, 0.001, 0.04)
	b.impact = render(impact.gain(0.5))

	launch := sweep(300, 900, samples(0.08))
	applyEnvelope(launch, 0.005, 0.04)
	b.launch = render(launch.gain(0.35))

	rebound := sweep(700, 400, samples(0.05))
	applyEnvelope(rebound, 0.002, 0.03)
	b.rebound = render(rebound.gain(0.3))

	detonate := mix(
		sweep(120, 40, samples(0.35)),
		oscillator(waveNoise, 0, samples(0.25)).gain(0.5),
	)
	applyEnvelope(detonate, 0.002, 0.25)
	b.detonate = render(detonate.gain(0.8))

	death := sweep(500, 80, samples(0.4))
	applyEnvelope(death, 0.01, 0.3)
	b.death = render(death.gain(0.5))

	return b
}

// Initialize opens the speaker and starts the mixer. Safe to call once;
// errors leave the bank silent but usable.
func (b *Bank) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close stops all playing effects.
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Melee plays a melee-impact thump, cycling through the bank's variants.
func (b *Bank) Melee() {
	if b == nil {
		return
	}
	b.mu.Lock()
	buf := b.melee[b.meleeIdx%len(b.melee)]
	b.meleeIdx++
	b.mu.Unlock()
	b.play(buf)
}

// Impact plays the generic projectile-impact sound.
func (b *Bank) Impact() { b.playPtr(func() *beep.Buffer { return b.impact }) }

// Launch plays the projectile-launch chirp.
func (b *Bank) Launch() { b.playPtr(func() *beep.Buffer { return b.launch }) }

// Rebound plays the ricochet bounce blip.
func (b *Bank) Rebound() { b.playPtr(func() *beep.Buffer { return b.rebound }) }

// Detonate plays the area-effect explosion rumble.
func (b *Bank) Detonate() { b.playPtr(func() *beep.Buffer { return b.detonate }) }

// Death plays the character-death slide.
func (b *Bank) Death() { b.playPtr(func() *beep.Buffer { return b.death }) }

func (b *Bank) playPtr(get func() *beep.Buffer) {
	if b == nil {
		return
	}
	b.play(get())
}

func (b *Bank) play(buf *beep.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || buf == nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// render packs mono float samples into a stereo beep buffer.
func render(samples floatBuffer) *beep.Buffer {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(&bufferStreamer{samples: samples})
	return buf
}

// samples converts a duration in seconds to a sample count.
func samples(seconds float64) int {
	return int(seconds * float64(sampleRate))
}

// bufferStreamer adapts a floatBuffer to the beep.Streamer interface.
type bufferStreamer struct {
	samples floatBuffer
	pos     int
}

func (bs *bufferStreamer) Stream(out [][2]float64) (int, bool) {
	if bs.pos >= len(bs.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if bs.pos >= len(bs.samples) {
			break
		}
		v := bs.samples[bs.pos]
		out[i][0] = v
		out[i][1] = v
		bs.pos++
		n++
	}
	return n, true
}

func (bs *bufferStreamer) Err() error { return nil }
