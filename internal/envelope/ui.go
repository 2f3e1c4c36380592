package envelope

import "math/bits"

// The panel LEDs are wired in the opposite bit order to the codes below, so
// both encoders reverse the byte before handing it to the LED driver.

// ShowMode returns the one-hot code of the active algorithm:
// ADSR 1000, ACRC 0100, ACRC-Loop 0010, AHRD-Loop 0001.
func ShowMode(m Mode) uint8 {
	var code uint8
	switch m.(type) {
	case ADSR:
		code = 0b1000
	case ACRC:
		code = 0b0100
	case ACRCLoop:
		code = 0b0010
	case AHRDLoop:
		code = 0b0001
	}
	return bits.Reverse8(code)
}

// ShowStage returns the code of the current phase. Wait is dark. Four-stage
// algorithms light one LED per stage; two-stage ones light two LEDs so the
// direction of travel reads across the whole row.
func ShowStage(m Mode) uint8 {
	var code uint8
	switch m := m.(type) {
	case ADSR:
		switch m.Phase {
		case ADSRAttack:
			code = 0b1000
		case ADSRDecay:
			code = 0b0100
		case ADSRSustain:
			code = 0b0010
		case ADSRRelease:
			code = 0b0001
		}
	case ACRC:
		switch m.Phase {
		case ACRCAttack:
			code = 0b1100
		case ACRCRelease:
			code = 0b0011
		}
	case ACRCLoop:
		switch m.Phase {
		case LoopAttack:
			code = 0b1100
		case LoopRelease:
			code = 0b0011
		}
	case AHRDLoop:
		switch m.Phase {
		case AHRDAttack:
			code = 0b1000
		case AHRDHold:
			code = 0b0100
		case AHRDRelease:
			code = 0b0010
		case AHRDDelay:
			code = 0b0001
		}
	}
	return bits.Reverse8(code)
}
