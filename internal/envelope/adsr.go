package envelope

// adsr is the gate-controlled one-shot with sustain.
//
// CV: 0 attack time, 1 decay time, 2 sustain level, 3 release time. The
// attack peak is full scale.
func adsr(phase *ADSRPhase, time *uint32, last uint16, trig TriggerAction, cv *CV) (uint16, bool) {
	if adsrEdge(phase, time, trig) {
		return last, false
	}

	t := advance(time)
	switch *phase {
	case ADSRAttack:
		v := approach(last, MaxValue, remaining(phaseTicks(cv[0]), t))
		if v == MaxValue {
			*phase = ADSRDecay
			*time = 0
		}
		return v, false

	case ADSRDecay:
		sustain := level(cv[2])
		v := approach(last, sustain, remaining(phaseTicks(cv[1]), t))
		if v == sustain {
			*phase = ADSRSustain
			*time = 0
		}
		return v, false

	case ADSRSustain:
		return level(cv[2]), false

	case ADSRRelease:
		v := approach(last, 0, remaining(phaseTicks(cv[3]), t))
		if v == 0 {
			*phase = ADSRWait
			*time = 0
			return 0, true
		}
		return v, false

	default:
		// Wait: anything left over from a mode switch drains at the release rate.
		return approach(last, 0, remaining(phaseTicks(cv[3]), t)), false
	}
}

// adsrEdge applies a gate edge and reports whether it switched phase.
func adsrEdge(phase *ADSRPhase, time *uint32, trig TriggerAction) bool {
	switch trig {
	case GateRise:
		// Also a retrigger: the new attack starts from wherever we are.
		*phase = ADSRAttack
		*time = 0
		return true
	case GateFall:
		if *phase != ADSRWait && *phase != ADSRRelease {
			*phase = ADSRRelease
			*time = 0
			return true
		}
	}
	return false
}
