package envelope

// acrc is the trigger-controlled attack/release one-shot. Gate edges are
// ignored.
//
// CV: 0 attack time, 1 release time, 2 peak level.
func acrc(phase *ACRCPhase, time *uint32, last uint16, trig TriggerAction, cv *CV) (uint16, bool) {
	if acrcEdge(phase, time, trig) {
		return last, false
	}

	t := advance(time)
	switch *phase {
	case ACRCAttack:
		peak := level(cv[2])
		v := approach(last, peak, remaining(phaseTicks(cv[0]), t))
		if v == peak {
			*phase = ACRCRelease
			*time = 0
		}
		return v, false

	case ACRCRelease:
		v := approach(last, 0, remaining(phaseTicks(cv[1]), t))
		if v == 0 {
			*phase = ACRCWait
			*time = 0
			return 0, true
		}
		return v, false

	default:
		return approach(last, 0, remaining(phaseTicks(cv[1]), t)), false
	}
}

// acrcEdge applies a trigger and reports whether it restarted the attack.
func acrcEdge(phase *ACRCPhase, time *uint32, trig TriggerAction) bool {
	if trig != Trigger {
		return false
	}
	*phase = ACRCAttack
	*time = 0
	return true
}

// acrcLoop cycles attack and release forever. Its output depends only on the
// phase, the time within it and the CV; it takes no trigger and no previous
// value.
//
// CV: 0 attack time, 1 release time, 2 peak level.
func acrcLoop(phase *LoopPhase, time *uint32, cv *CV) (uint16, bool) {
	t := advance(time)
	peak := level(cv[2])

	if *phase == LoopRelease {
		d := phaseTicks(cv[1])
		if t >= d {
			*phase = LoopAttack
			*time = 0
			return 0, true
		}
		return peak - scale(peak, t, d), false
	}

	d := phaseTicks(cv[0])
	if t >= d {
		*phase = LoopRelease
		*time = 0
		return peak, false
	}
	return scale(peak, t, d), false
}
