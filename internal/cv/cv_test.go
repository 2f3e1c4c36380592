package cv

import (
	"testing"

	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/lfo"
)

func TestStatic(t *testing.T) {
	var dst envelope.CV
	Static{1, 2, 3, 4}.Sample(&dst)
	if dst != (envelope.CV{1, 2, 3, 4}) {
		t.Fatalf("got %v", dst)
	}
}

func TestKnobsClampAndSample(t *testing.T) {
	k := NewKnobs(envelope.CV{10, 20, 30, 40})
	k.Set(1, -5)
	k.Set(2, 9000)
	k.Set(7, 100)
	var dst envelope.CV
	k.Sample(&dst)
	if dst != (envelope.CV{10, 0, 4095, 40}) {
		t.Fatalf("got %v", dst)
	}
	if k.Get(3) != 40 || k.Get(-1) != 0 {
		t.Fatalf("get: %d %d", k.Get(3), k.Get(-1))
	}
}

func TestModulatedStaysInRange(t *testing.T) {
	m := &Modulated{
		Base: Static{0, 2048, 4095, 100},
		LFOs: [4]*lfo.LFO{
			lfo.New(500, 16, lfo.WaveSquare),
			nil,
			lfo.New(500, 16, lfo.WaveTriangle),
			lfo.New(50, 4, lfo.WaveSaw),
		},
	}
	var dst envelope.CV
	sawOffset := false
	for i := 0; i < 64; i++ {
		m.Sample(&dst)
		for ch, v := range dst {
			if v > envelope.MaxValue {
				t.Fatalf("channel %d out of range: %d", ch, v)
			}
		}
		if dst[1] != 2048 {
			t.Fatalf("unmodulated channel moved: %d", dst[1])
		}
		if dst[3] != 100 {
			sawOffset = true
		}
	}
	if !sawOffset {
		t.Fatal("modulated channel never moved")
	}
}

func TestModulatedNilBase(t *testing.T) {
	m := &Modulated{LFOs: [4]*lfo.LFO{lfo.New(100, 4, lfo.WaveSaw)}}
	var dst envelope.CV
	m.Sample(&dst)
	if dst[0] != 100 {
		t.Fatalf("got %d, want 100", dst[0])
	}
}
