// Package pattern parses gate scripts: one symbol per control tick.
//
//	^   gate rise
//	v   gate fall
//	!   trigger
//	. _ idle tick
//	N   a count after any symbol or group repeats it N times
//	[ ] group; "[^.9v.9]4" plays the bracketed ticks four times (twice without a count)
//	#   comment to end of line
//
// Whitespace is ignored.
package pattern

import (
	"fmt"
	"strconv"

	"github.com/cbegin/envgen-go/internal/envelope"
)

// MaxTicks bounds the expanded length of a script.
const MaxTicks = 1 << 22

// Script is a parsed pattern.
type Script struct {
	Actions []envelope.TriggerAction
	// Loop makes At wrap around instead of going idle past the end.
	Loop bool
}

// Len returns the number of ticks in one pass of the script.
func (s *Script) Len() int { return len(s.Actions) }

// At returns the action for the given tick.
func (s *Script) At(tick int) envelope.TriggerAction {
	if s == nil || len(s.Actions) == 0 || tick < 0 {
		return envelope.NoAction
	}
	if tick >= len(s.Actions) {
		if !s.Loop {
			return envelope.NoAction
		}
		tick %= len(s.Actions)
	}
	return s.Actions[tick]
}

// Parse compiles a pattern string.
func Parse(input string) (*Script, error) {
	p := parser{src: input}
	actions, err := p.sequence(-1)
	if err != nil {
		return nil, err
	}
	return &Script{Actions: actions}, nil
}

var symbols = map[byte]envelope.TriggerAction{
	'^': envelope.GateRise,
	'v': envelope.GateFall,
	'!': envelope.Trigger,
	'.': envelope.NoAction,
	'_': envelope.NoAction,
}

type parser struct {
	src string
	pos int
}

// sequence reads symbols until the end of input or, inside the group opened
// at offset open, the closing bracket. open is negative at the top level.
func (p *parser) sequence(open int) ([]envelope.TriggerAction, error) {
	inGroup := open >= 0
	var out []envelope.TriggerAction
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			if inGroup {
				return nil, fmt.Errorf("unclosed '[' at %d", open)
			}
			return out, nil
		}

		c := p.src[p.pos]
		var unit []envelope.TriggerAction
		switch c {
		case '[':
			open := p.pos
			p.pos++
			inner, err := p.sequence(open)
			if err != nil {
				return nil, err
			}
			unit = inner
		case ']':
			if !inGroup {
				return nil, fmt.Errorf("unmatched ']' at %d", p.pos)
			}
			p.pos++
			return out, nil
		default:
			a, ok := symbols[c]
			if !ok {
				return nil, fmt.Errorf("unexpected %q at %d", c, p.pos)
			}
			unit = []envelope.TriggerAction{a}
			p.pos++
		}

		count, ok, err := p.count()
		if err != nil {
			return nil, err
		}
		if !ok {
			count = 1
			if c == '[' {
				count = 2
			}
		}
		if len(out)+len(unit)*count > MaxTicks {
			return nil, fmt.Errorf("pattern longer than %d ticks at %d", MaxTicks, p.pos)
		}
		for i := 0; i < count; i++ {
			out = append(out, unit...)
		}
	}
}

func (p *parser) count() (int, bool, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false, nil
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil || n > MaxTicks {
		return 0, false, fmt.Errorf("repeat count out of range at %d", start)
	}
	return n, true, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		case '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}
