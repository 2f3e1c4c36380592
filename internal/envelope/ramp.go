package envelope

import "math"

// phaseTicks maps a CV reading to a phase length. The mapping is linear:
// 0 gives a single tick, full scale gives 4096.
func phaseTicks(cv uint16) uint32 {
	return 1 + uint32(level(cv))
}

// level maps a CV reading to an output level.
func level(cv uint16) uint16 {
	if cv > MaxValue {
		return MaxValue
	}
	return cv
}

// advance counts one more tick in the current phase and returns the new count.
func advance(time *uint32) uint32 {
	if *time < math.MaxUint32 {
		*time++
	}
	return *time
}

// remaining is how many ticks of a phase of length d are left, counting the
// current tick t (1-based). It never drops below 1.
func remaining(d, t uint32) uint32 {
	if t >= d {
		return 1
	}
	return d - t + 1
}

// approach steps from toward to, covering ceil(distance/left) of the gap.
// With left == 1 it lands exactly on to; it never overshoots.
func approach(from, to uint16, left uint32) uint16 {
	if left == 0 {
		left = 1
	}
	if to >= from {
		d := uint32(to - from)
		return from + uint16((d+left-1)/left)
	}
	d := uint32(from - to)
	return from - uint16((d+left-1)/left)
}

// scale returns lvl*t/d, saturating at lvl once t reaches d.
func scale(lvl uint16, t, d uint32) uint16 {
	if d == 0 || t >= d {
		return lvl
	}
	return uint16(uint32(lvl) * t / d)
}
