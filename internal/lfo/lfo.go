package lfo

import "math"

// Waveform constants, in panel order.
const (
	WaveSaw      = 0
	WaveSquare   = 1
	WaveTriangle = 2
	WaveRandom   = 3
)

// LFO is a tick-rate low-frequency oscillator that produces signed CV
// offsets. It advances once per control tick, so its period is counted in
// ticks rather than Hz.
type LFO struct {
	depth    int     // peak offset in CV units
	period   uint32  // ticks per cycle
	waveform int     // 0=saw, 1=square, 2=triangle, 3=random
	phase    float64 // current phase [0, 1)
	randVal  float64 // held random value for sample-and-hold
}

// New returns a configured LFO.
func New(depth int, periodTicks uint32, waveform int) *LFO {
	l := &LFO{}
	l.Set(depth, periodTicks, waveform)
	return l
}

// Set configures the LFO parameters. Unknown waveforms fall back to triangle.
func (l *LFO) Set(depth int, periodTicks uint32, waveform int) {
	if depth < 0 {
		depth = -depth
	}
	l.depth = depth
	l.period = periodTicks
	if waveform < 0 || waveform > 3 {
		waveform = WaveTriangle
	}
	l.waveform = waveform
}

// Next advances the LFO by one tick and returns an offset in [-depth, +depth].
// Returns 0 if depth or period is zero.
func (l *LFO) Next() int {
	if !l.Active() {
		return 0
	}

	var waveVal float64
	switch l.waveform {
	case WaveSaw:
		waveVal = 1.0 - 2.0*l.phase
	case WaveSquare:
		if l.phase < 0.5 {
			waveVal = 1.0
		} else {
			waveVal = -1.0
		}
	case WaveRandom:
		waveVal = l.randVal
	default:
		if l.phase < 0.5 {
			waveVal = 4.0*l.phase - 1.0
		} else {
			waveVal = 3.0 - 4.0*l.phase
		}
	}

	oldPhase := l.phase
	l.phase += 1.0 / float64(l.period)
	for l.phase >= 1.0 {
		l.phase -= 1.0
	}

	// New held value at each cycle boundary.
	if l.waveform == WaveRandom && l.phase < oldPhase {
		l.randVal = math.Sin(l.phase*12345.6789+l.randVal*67890.1234) * 2.0
		l.randVal -= math.Floor(l.randVal)
		l.randVal = l.randVal*2.0 - 1.0
	}

	return int(math.Round(waveVal * float64(l.depth)))
}

// Active returns true if the LFO has non-zero depth and period.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.period != 0
}

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
	l.randVal = 0
}
