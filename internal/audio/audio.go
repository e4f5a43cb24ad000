// Package audio turns the lifecycle into a quiet ambient pad. Each phase
// carries its own chord, director cues punch through as one-shot events,
// and the whole mix runs through a one-pole filter and a ping-pong delay
// so nothing arrives harsh. Start is best-effort: a machine with no
// usable output device gets a silent simulation, not a dead one.
package audio

import (
	"math"
	"math/cmplx"
	"math/rand"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

const (
	chordFade  = 0.5  // chord crossfade speed, per second
	masterVol  = 0.24 // headroom under the delay feedback
	rumbleSize = 8192 // detonation noise table length, power of two
)

// chords maps phase names onto oscillator stacks, low drones for the
// slow stages and a thin cluster for the detonation.
var chords = map[string][]float64{
	"NEBULA_COLLAPSE": {49.00, 73.42, 98.00, 146.83},
	"MAIN_SEQUENCE":   {98.00, 116.54, 146.83, 174.61, 220.00},
	"RED_GIANT":       {87.31, 103.83, 130.81, 155.56, 196.00},
	"SUPERNOVA":       {61.74, 92.50, 123.47},
	"REMNANT":         {36.71, 55.00, 73.42, 110.00},
}

type Processor struct {
	stream *portaudio.Stream

	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	rumble    []float64
	rumblePos int

	mu        sync.Mutex
	chord     []float64
	prevChord []float64
	morph     float64 // 0 plays prevChord, 1 plays chord
	intensity float64
	smoothed  float64

	pingAge   float64 // seconds since the ignition ping fired, -1 idle
	blipAge   float64
	rumbleEnv float64

	active bool
}

func NewProcessor() *Processor {
	// 0.6 second delay line reads as a large, diffuse room.
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		rumble:    rumbleTable(rumbleSize, rand.New(rand.NewSource(1))),
		chord:     chords["NEBULA_COLLAPSE"],
		prevChord: chords["NEBULA_COLLAPSE"],
		morph:     1,
		pingAge:   -1,
		blipAge:   -1,
	}
}

// Start opens the default output device. On failure the processor stays
// inert and every later call is a no-op, so callers can treat sound as
// optional.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.processBlock)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	a.stream = stream
	a.active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.active {
		return
	}
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
	}
	portaudio.Terminate()
	a.active = false
}

func (a *Processor) Active() bool { return a.active }

// Cue reacts to director events: phase cues swap the chord, the one-shot
// cues arm their envelopes. Unknown names are ignored.
func (a *Processor) Cue(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if phaseName, ok := strings.CutPrefix(name, "phase:"); ok {
		next, known := chords[phaseName]
		if !known {
			return
		}
		if a.morph >= 1 {
			a.prevChord = a.chord
		}
		a.chord = next
		a.morph = 0
		return
	}

	switch name {
	case "ignition":
		a.pingAge = 0
	case "detonation":
		a.rumbleEnv = 1
	case "consume":
		a.blipAge = 0
	}
}

// SetIntensity drives the filter cutoff, 0 closed and dark through 1
// fully open. Values are clamped.
func (a *Processor) SetIntensity(v float64) {
	a.mu.Lock()
	a.intensity = math.Max(0, math.Min(1, v))
	a.mu.Unlock()
}

// Triangle wave, flute-like without the sawtooth buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// rumbleTable shapes noise in the frequency domain, 1/f^1.5 magnitudes
// under random phases, then inverts it into a low rolling texture for
// the detonation.
func rumbleTable(n int, rng *rand.Rand) []float64 {
	spectrum := make([]complex128, n)
	for k := 1; k < n/2; k++ {
		mag := 1.0 / math.Pow(float64(k), 1.5)
		c := cmplx.Rect(mag, 2*math.Pi*rng.Float64())
		spectrum[k] = c
		spectrum[n-k] = cmplx.Conj(c)
	}

	wave := fft.IFFT(spectrum)
	out := make([]float64, n)
	peak := 0.0
	for i, c := range wave {
		out[i] = real(c)
		if mag := math.Abs(out[i]); mag > peak {
			peak = mag
		}
	}
	if peak > 0 {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

func (a *Processor) processBlock(out [][]float32) {
	a.mu.Lock()
	chord, prev := a.chord, a.prevChord
	morph := a.morph
	a.smoothed = a.smoothed*0.995 + a.intensity*0.005
	cutoff := 300.0 + a.smoothed*900.0
	pingAge, blipAge := a.pingAge, a.blipAge
	rumbleEnv := a.rumbleEnv
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := a.padSample(prev, 1-morph)
		l2, r2 := a.padSample(chord, morph)
		sampleL += l2
		sampleR += r2

		if morph < 1 {
			morph = math.Min(1, morph+chordFade*dt)
		}

		// One-shot layers sit on top of the pad.
		if pingAge >= 0 {
			ping := math.Sin(2*math.Pi*784*pingAge) * math.Exp(-3*pingAge) * 0.3
			sampleL += ping
			sampleR += ping
			pingAge += dt
			if pingAge > 2 {
				pingAge = -1
			}
		}
		if blipAge >= 0 {
			blip := math.Sin(2*math.Pi*1318*blipAge) * math.Exp(-40*blipAge) * 0.1
			sampleL += blip
			sampleR += blip
			blipAge += dt
			if blipAge > 0.2 {
				blipAge = -1
			}
		}
		if rumbleEnv > 0.001 {
			r := a.rumble[a.rumblePos] * rumbleEnv * 0.8
			sampleL += r
			sampleR += r
			a.rumblePos = (a.rumblePos + 1) % len(a.rumble)
			rumbleEnv *= math.Exp(-dt / 1.5)
		}

		var outL, outR float64
		outL, a.filterState[0] = lpf(sampleL, cutoff, dt, a.filterState[0])
		outR, a.filterState[1] = lpf(sampleR, cutoff, dt, a.filterState[1])

		// Ping-pong delay: each side hears a little of the other.
		delayL := a.delayLine[0][a.delayHead]
		delayR := a.delayLine[1][a.delayHead]
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		a.delayLine[0][a.delayHead] = mixL * 0.7
		a.delayLine[1][a.delayHead] = mixR * 0.7
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * masterVol)
		out[1][i] = float32(mixR * masterVol)

		a.time += dt
	}

	a.mu.Lock()
	a.morph = morph
	a.pingAge = pingAge
	a.blipAge = blipAge
	a.rumbleEnv = rumbleEnv
	a.mu.Unlock()
}

// padSample sums one chord's detuned triangle pair at the given gain.
func (a *Processor) padSample(chord []float64, gain float64) (l, r float64) {
	if gain <= 0 || len(chord) == 0 {
		return 0, 0
	}
	g := gain / float64(len(chord))
	for j, f := range chord {
		// Slow LFO breathes each voice on its own cycle.
		lfo := 0.7 + 0.3*math.Sin(a.time*0.2+float64(j))
		l += triangle(a.time*(f*0.999)) * g * lfo
		r += triangle(a.time*(f*1.001)) * g * lfo
	}
	return l, r
}
