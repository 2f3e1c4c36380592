package envgen

import (
	"math"

	"github.com/cbegin/envgen-go/internal/envelope"
)

const twoPi = math.Pi * 2

// Monitor drives a module from the audio clock so it can be heard. Every
// audio frame advances the tick accumulator by tickRate/sampleRate ticks.
// Channel 0 plays left and channel 1 (or 0 again) plays right, each as a
// sine tone whose gain follows the envelope. With a tone of 0 Hz the raw
// envelope is written instead.
//
// The monitor becomes the module's tick owner; do not call Tick elsewhere
// while it is playing.
type Monitor struct {
	module   *Module
	tickStep float64
	acc      float64

	phaseStep float64
	phase     float64
}

func NewMonitor(m *Module, sampleRate int, toneHz float64) *Monitor {
	mon := &Monitor{module: m}
	if sampleRate > 0 {
		mon.tickStep = float64(m.tickRate) / float64(sampleRate)
		mon.phaseStep = toneHz / float64(sampleRate)
	}
	return mon
}

// Process fills dst with interleaved stereo frames.
func (mon *Monitor) Process(dst []float32) {
	right := 0
	if len(mon.module.channels) > 1 {
		right = 1
	}
	for i := 0; i+1 < len(dst); i += 2 {
		mon.acc += mon.tickStep
		for mon.acc >= 1 {
			mon.module.Tick()
			mon.acc--
		}

		carrier := 1.0
		if mon.phaseStep > 0 {
			carrier = math.Sin(twoPi * mon.phase)
			mon.phase += mon.phaseStep
			if mon.phase >= 1 {
				mon.phase -= math.Floor(mon.phase)
			}
		}
		dst[i] = float32(carrier * gain(mon.module.channels[0].state.LastValue))
		dst[i+1] = float32(carrier * gain(mon.module.channels[right].state.LastValue))
	}
}

func gain(v uint16) float64 {
	return float64(v) / float64(envelope.MaxValue)
}
