// Package envelope implements the control-rate envelope engine of a single
// module channel: four phase algorithms behind one dispatcher, plus the LED
// status encoders.
package envelope

import "fmt"

// MaxValue is the largest value the 12-bit DAC accepts.
const MaxValue uint16 = 4095

// TriggerAction is the single edge event delivered to a tick.
type TriggerAction uint8

const (
	NoAction TriggerAction = iota
	GateRise
	GateFall
	Trigger
)

func (a TriggerAction) String() string {
	switch a {
	case NoAction:
		return "none"
	case GateRise:
		return "gate-rise"
	case GateFall:
		return "gate-fall"
	case Trigger:
		return "trigger"
	}
	return fmt.Sprintf("TriggerAction(%d)", uint8(a))
}

// CV is one tick's snapshot of the four control-voltage inputs, each nominally
// in [0, MaxValue]. What each channel controls depends on the active algorithm.
type CV [4]uint16

// Kind identifies one of the four algorithms without its phase.
type Kind uint8

const (
	KindADSR Kind = iota
	KindACRC
	KindACRCLoop
	KindAHRDLoop
)

// Kinds lists every algorithm in menu order.
var Kinds = [...]Kind{KindADSR, KindACRC, KindACRCLoop, KindAHRDLoop}

func (k Kind) String() string {
	switch k {
	case KindADSR:
		return "adsr"
	case KindACRC:
		return "acrc"
	case KindACRCLoop:
		return "acrc-loop"
	case KindAHRDLoop:
		return "ahrd-loop"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Initial returns the algorithm's mode in its starting phase: Wait for the
// one-shot algorithms, Attack for the free-running ones.
func (k Kind) Initial() Mode {
	switch k {
	case KindACRC:
		return ACRC{Phase: ACRCWait}
	case KindACRCLoop:
		return ACRCLoop{Phase: LoopAttack}
	case KindAHRDLoop:
		return AHRDLoop{Phase: AHRDAttack}
	default:
		return ADSR{Phase: ADSRWait}
	}
}

// ParseKind maps a menu/flag name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown envelope mode %q (expected adsr|acrc|acrc-loop|ahrd-loop)", name)
}

// Mode is the closed union of algorithm variants. Only the four types in this
// package implement it.
type Mode interface {
	Kind() Kind
	String() string
	isMode()
}

type ADSR struct{ Phase ADSRPhase }
type ACRC struct{ Phase ACRCPhase }
type ACRCLoop struct{ Phase LoopPhase }
type AHRDLoop struct{ Phase AHRDPhase }

func (ADSR) Kind() Kind     { return KindADSR }
func (ACRC) Kind() Kind     { return KindACRC }
func (ACRCLoop) Kind() Kind { return KindACRCLoop }
func (AHRDLoop) Kind() Kind { return KindAHRDLoop }

func (m ADSR) String() string     { return "adsr/" + m.Phase.String() }
func (m ACRC) String() string     { return "acrc/" + m.Phase.String() }
func (m ACRCLoop) String() string { return "acrc-loop/" + m.Phase.String() }
func (m AHRDLoop) String() string { return "ahrd-loop/" + m.Phase.String() }

func (ADSR) isMode()     {}
func (ACRC) isMode()     {}
func (ACRCLoop) isMode() {}
func (AHRDLoop) isMode() {}

// Next returns the following algorithm in menu order, at its initial phase.
func Next(m Mode) Mode {
	k := KindADSR
	if m != nil {
		k = Kinds[(int(m.Kind())+1)%len(Kinds)]
	}
	return k.Initial()
}

type ADSRPhase uint8

const (
	ADSRWait ADSRPhase = iota
	ADSRAttack
	ADSRDecay
	ADSRSustain
	ADSRRelease
)

func (p ADSRPhase) String() string {
	return [...]string{"wait", "attack", "decay", "sustain", "release"}[p%5]
}

type ACRCPhase uint8

const (
	ACRCWait ACRCPhase = iota
	ACRCAttack
	ACRCRelease
)

func (p ACRCPhase) String() string {
	return [...]string{"wait", "attack", "release"}[p%3]
}

// LoopPhase is the phase of the free-running two-stage cycler.
type LoopPhase uint8

const (
	LoopAttack LoopPhase = iota
	LoopRelease
)

func (p LoopPhase) String() string {
	if p == LoopRelease {
		return "release"
	}
	return "attack"
}

type AHRDPhase uint8

const (
	AHRDAttack AHRDPhase = iota
	AHRDHold
	AHRDRelease
	AHRDDelay
)

func (p AHRDPhase) String() string {
	return [...]string{"attack", "hold", "release", "delay"}[p%4]
}

// State is the mutable state of one channel. It is owned by the tick loop and
// only advanced through Update.
type State struct {
	Mode Mode
	// Time counts ticks spent in the current phase. It restarts at 0 on every
	// phase change.
	Time      uint32
	LastValue uint16

	// prev is the mode the last tick ended in; a mismatch with Mode means the
	// mode or phase was swapped out from under us.
	prev    Mode
	entered bool
}

// NewState returns an idle state for the given mode. A nil mode selects ADSR.
func NewState(m Mode) State {
	if m == nil {
		m = KindADSR.Initial()
	}
	return State{Mode: m, prev: m}
}

// SetMode switches to m between ticks. LastValue is kept so the next tick
// continues from it.
func (s *State) SetMode(m Mode) {
	if m == nil {
		m = KindADSR.Initial()
	}
	s.Mode = m
	s.Time = 0
	s.entered = true
}

// Reset returns the current algorithm to its initial phase, as the panel's
// reset action does.
func (s *State) Reset() {
	k := KindADSR
	if s.Mode != nil {
		k = s.Mode.Kind()
	}
	s.SetMode(k.Initial())
}
