// Package gate turns jack activity into the single TriggerAction each tick
// consumes.
package gate

import (
	"sync/atomic"

	"github.com/cbegin/envgen-go/internal/envelope"
)

// Latch hands one edge from a producer (an input goroutine, or an interrupt
// on hardware) to the tick loop. Post may be called from any goroutine; Take
// is called once per tick by the owner of the envelope state.
//
// The latch holds a single slot: if several edges arrive inside one tick
// window the latest one wins, which for a gate is the edge matching the
// current jack level.
type Latch struct {
	pending atomic.Uint32
}

// Post records an edge for the next tick. NoAction clears nothing.
func (l *Latch) Post(a envelope.TriggerAction) {
	if a == envelope.NoAction {
		return
	}
	l.pending.Store(uint32(a))
}

// Take returns the pending edge and clears the slot.
func (l *Latch) Take() envelope.TriggerAction {
	return envelope.TriggerAction(l.pending.Swap(0))
}

// Detector derives gate edges from a sampled gate level.
type Detector struct {
	high bool
	// RiseAsTrigger reports rising edges as Trigger instead of GateRise, for
	// patching a gate into a trigger-controlled algorithm.
	RiseAsTrigger bool
}

// Sample feeds the current gate level and returns the edge it implies, if
// any.
func (d *Detector) Sample(high bool) envelope.TriggerAction {
	if high == d.high {
		return envelope.NoAction
	}
	d.high = high
	if !high {
		return envelope.GateFall
	}
	if d.RiseAsTrigger {
		return envelope.Trigger
	}
	return envelope.GateRise
}

// High reports the last sampled level.
func (d *Detector) High() bool { return d.high }
