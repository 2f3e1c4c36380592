//go:build !envnoassert

package envelope

import "fmt"

// checkOutput panics when an algorithm produced a value the DAC cannot take.
// That can only be an arithmetic bug. Build with -tags envnoassert to drop
// the check from the tick path.
func checkOutput(v uint16) {
	if v > MaxValue {
		panic(fmt.Sprintf("envelope: output %d exceeds DAC range %d", v, MaxValue))
	}
}
