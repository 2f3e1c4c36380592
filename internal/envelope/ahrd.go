package envelope

// ahrd cycles attack, hold, release and delay forever at full-scale peak.
//
// CV: 0 attack time, 1 hold time, 2 release time, 3 delay time.
//
// The trigger is accepted to keep the call shape of the one-shots but has no
// effect: the cycler runs regardless of input events.
func ahrd(phase *AHRDPhase, time *uint32, _ TriggerAction, cv *CV) (uint16, bool) {
	t := advance(time)

	switch *phase {
	case AHRDHold:
		if t >= phaseTicks(cv[1]) {
			*phase = AHRDRelease
			*time = 0
		}
		return MaxValue, false

	case AHRDRelease:
		d := phaseTicks(cv[2])
		if t >= d {
			*phase = AHRDDelay
			*time = 0
			return 0, false
		}
		return MaxValue - scale(MaxValue, t, d), false

	case AHRDDelay:
		if t >= phaseTicks(cv[3]) {
			*phase = AHRDAttack
			*time = 0
			return 0, true
		}
		return 0, false

	default:
		d := phaseTicks(cv[0])
		if t >= d {
			*phase = AHRDHold
			*time = 0
			return MaxValue, false
		}
		return scale(MaxValue, t, d), false
	}
}
