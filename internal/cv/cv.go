// Package cv provides the per-tick control-voltage snapshots the envelope
// engine reads.
package cv

import (
	"sync/atomic"

	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/lfo"
)

// Source fills dst with one tick's CV snapshot. It is called once per tick
// by the tick loop.
type Source interface {
	Sample(dst *envelope.CV)
}

// Static always returns the same snapshot.
type Static envelope.CV

func (s Static) Sample(dst *envelope.CV) { *dst = envelope.CV(s) }

// Knobs is a snapshot that can be turned from another goroutine (a UI) while
// the tick loop samples it.
type Knobs struct {
	values [4]atomic.Uint32
}

// NewKnobs returns knobs preset to initial.
func NewKnobs(initial envelope.CV) *Knobs {
	k := &Knobs{}
	for i, v := range initial {
		k.Set(i, int(v))
	}
	return k
}

// Set moves knob i, clamping into the ADC range. Out-of-range indices are
// ignored.
func (k *Knobs) Set(i int, v int) {
	if i < 0 || i >= len(k.values) {
		return
	}
	k.values[i].Store(uint32(Clamp(v)))
}

// Get returns the current position of knob i.
func (k *Knobs) Get(i int) int {
	if i < 0 || i >= len(k.values) {
		return 0
	}
	return int(k.values[i].Load())
}

func (k *Knobs) Sample(dst *envelope.CV) {
	for i := range dst {
		dst[i] = uint16(k.values[i].Load())
	}
}

// Modulated adds an LFO offset to each channel of a base source.
type Modulated struct {
	Base Source
	LFOs [4]*lfo.LFO // nil entries are unmodulated
}

func (m *Modulated) Sample(dst *envelope.CV) {
	if m.Base != nil {
		m.Base.Sample(dst)
	} else {
		*dst = envelope.CV{}
	}
	for i, l := range m.LFOs {
		if l == nil {
			continue
		}
		dst[i] = Clamp(int(dst[i]) + l.Next())
	}
}

// Clamp limits v to the 12-bit ADC range.
func Clamp(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > int(envelope.MaxValue) {
		return envelope.MaxValue
	}
	return uint16(v)
}
