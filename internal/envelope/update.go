package envelope

import "fmt"

// Update runs one control tick: the active algorithm consumes trig and cv,
// advances s.Time and its phase, and the resulting value becomes
// s.LastValue. The returned flag is true only on the tick that completes a
// cycle.
//
// The first tick after SetMode, Reset, or a direct change of s.Mode emits
// s.LastValue unchanged and never reports a rollover. Only edge events are
// applied on that tick; time does not advance, so the ramp starts at tick 1
// on the following call.
func Update(s *State, trig TriggerAction, cv *CV) (uint16, bool) {
	if s.Mode == nil {
		s.Mode = KindADSR.Initial()
		s.prev = s.Mode
	}
	if s.entered || s.Mode != s.prev {
		enter(s, trig)
		checkOutput(s.LastValue)
		return s.LastValue, false
	}

	var (
		value    uint16
		rollover bool
	)
	switch m := s.Mode.(type) {
	case ADSR:
		value, rollover = adsr(&m.Phase, &s.Time, s.LastValue, trig, cv)
		s.Mode = m
	case ACRC:
		value, rollover = acrc(&m.Phase, &s.Time, s.LastValue, trig, cv)
		s.Mode = m
	case ACRCLoop:
		value, rollover = acrcLoop(&m.Phase, &s.Time, cv)
		s.Mode = m
	case AHRDLoop:
		value, rollover = ahrd(&m.Phase, &s.Time, trig, cv)
		s.Mode = m
	default:
		panic(fmt.Sprintf("envelope: unknown mode %T", s.Mode))
	}
	s.prev = s.Mode

	checkOutput(value)
	s.LastValue = value
	return value, rollover
}

// enter runs the hold tick of a freshly switched mode. The loops take no
// events, so only the one-shots can change phase here.
func enter(s *State, trig TriggerAction) {
	switch m := s.Mode.(type) {
	case ADSR:
		adsrEdge(&m.Phase, &s.Time, trig)
		s.Mode = m
	case ACRC:
		acrcEdge(&m.Phase, &s.Time, trig)
		s.Mode = m
	case ACRCLoop, AHRDLoop:
	default:
		panic(fmt.Sprintf("envelope: unknown mode %T", s.Mode))
	}
	s.entered = false
	s.prev = s.Mode
}
