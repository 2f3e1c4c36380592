//go:build envnoassert

package envelope

func checkOutput(uint16) {}
