// Package panel renders the envelope module's two four-LED rows.
package panel

import (
	"strings"

	"github.com/cbegin/envgen-go/internal/envelope"
)

// LEDs decodes a byte from envelope.ShowMode or envelope.ShowStage into the
// left-to-right lit state of the four LEDs. The codes arrive bit-reversed, so
// the leftmost LED sits on bit 4.
func LEDs(code uint8) [4]bool {
	var out [4]bool
	for i := range out {
		out[i] = code&(1<<(4+i)) != 0
	}
	return out
}

// Row draws four LEDs as text.
func Row(code uint8) string { return row(LEDs(code)) }

// Readout is what the panel shows for one mode.
type Readout struct {
	Mode  [4]bool
	Stage [4]bool
}

// Read queries both encoders for m.
func Read(m envelope.Mode) Readout {
	return Readout{
		Mode:  LEDs(envelope.ShowMode(m)),
		Stage: LEDs(envelope.ShowStage(m)),
	}
}

func (r Readout) String() string {
	return "mode " + row(r.Mode) + " stage " + row(r.Stage)
}

func row(leds [4]bool) string {
	var b strings.Builder
	for _, on := range leds {
		if on {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
	}
	return b.String()
}
