package envgen

import (
	"testing"

	"github.com/cbegin/envgen-go/internal/cv"
	"github.com/cbegin/envgen-go/internal/envelope"
)

func TestNewModuleValidatesOptions(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"no channels", []Option{WithChannels(0)}},
		{"zero tick rate", []Option{WithTickRate(0)}},
		{"unknown mode", []Option{WithInitialMode(envelope.Kind(9))}},
		{"source out of range", []Option{WithChannels(2), WithCVSource(2, cv.Static{})}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewModule(tc.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestModuleDefaults(t *testing.T) {
	m, err := NewModule()
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if m.Channels() != 1 || m.TickRate() != DefaultTickRate {
		t.Fatalf("channels=%d rate=%d", m.Channels(), m.TickRate())
	}
	st := m.Status(0)
	if st.Mode != (envelope.ADSR{Phase: envelope.ADSRWait}) || st.Value != 0 {
		t.Fatalf("status = %+v", st)
	}
	if st.ModeLEDs != envelope.ShowMode(st.Mode) || st.StageLEDs != 0 {
		t.Fatalf("leds = %08b %08b", st.ModeLEDs, st.StageLEDs)
	}
	if (m.Status(5) != Status{}) {
		t.Fatal("out of range status should be zero")
	}
}

func TestModuleChannelsAreIndependent(t *testing.T) {
	src := cv.Static{10, 10, 2000, 10}
	m, err := NewModule(WithChannels(2), WithCVSource(0, src), WithCVSource(1, src))
	if err != nil {
		t.Fatal(err)
	}
	m.Post(1, envelope.GateRise)
	m.Post(7, envelope.GateRise)
	m.Tick()
	for i := 0; i < 5; i++ {
		m.Tick()
	}
	if got := m.Status(0); got.Mode != (envelope.ADSR{Phase: envelope.ADSRWait}) || got.Value != 0 {
		t.Fatalf("channel 0 moved: %+v", got)
	}
	if got := m.Status(1); got.Mode != (envelope.ADSR{Phase: envelope.ADSRAttack}) || got.Value == 0 {
		t.Fatalf("channel 1 idle: %+v", got)
	}
	if m.Ticks() != 6 {
		t.Fatalf("ticks = %d", m.Ticks())
	}
}

func TestModuleSelectModeContinuesFromLastValue(t *testing.T) {
	m, err := NewModule(WithCVSource(0, cv.Static{0, 0, 1500, 0}))
	if err != nil {
		t.Fatal(err)
	}
	m.Post(0, envelope.GateRise)
	for i := 0; i < 5; i++ {
		m.Tick()
	}
	if got := m.Status(0); got.Mode != (envelope.ADSR{Phase: envelope.ADSRSustain}) || got.Value != 1500 {
		t.Fatalf("not sustaining: %+v", got)
	}

	m.SelectMode(0, envelope.KindACRCLoop)
	m.Tick()
	got := m.Status(0)
	if got.Value != 1500 {
		t.Fatalf("value after switch = %d, want 1500", got.Value)
	}
	if got.Mode.Kind() != envelope.KindACRCLoop {
		t.Fatalf("mode = %v", got.Mode)
	}
	if got.ModeLEDs != envelope.ShowMode(envelope.ACRCLoop{}) {
		t.Fatalf("mode leds = %08b", got.ModeLEDs)
	}
}

func TestModuleNextModeAndReset(t *testing.T) {
	m, err := NewModule(WithInitialMode(envelope.KindAHRDLoop))
	if err != nil {
		t.Fatal(err)
	}
	m.NextMode(0)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ADSR{Phase: envelope.ADSRWait}) {
		t.Fatalf("next = %v", got)
	}

	m.SelectMode(0, envelope.KindACRC)
	m.Post(0, envelope.Trigger)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ACRC{Phase: envelope.ACRCAttack}) {
		t.Fatalf("after trigger = %v", got)
	}
	m.Reset(0)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ACRC{Phase: envelope.ACRCWait}) {
		t.Fatalf("after reset = %v", got)
	}
}

func TestModuleWatchReportsRollovers(t *testing.T) {
	m, err := NewModule(WithInitialMode(envelope.KindACRCLoop), WithCVSource(0, cv.Static{0, 0, 100, 0}))
	if err != nil {
		t.Fatal(err)
	}
	events := m.Watch()
	for i := 0; i < 6; i++ {
		m.Tick()
	}
	var ticks []uint64
	for len(events) > 0 {
		ev := <-events
		if ev.Channel != 0 || ev.Mode != (envelope.ACRCLoop{Phase: envelope.LoopAttack}) {
			t.Fatalf("event = %+v", ev)
		}
		ticks = append(ticks, ev.Tick)
	}
	if len(ticks) != 3 || ticks[0] != 1 || ticks[1] != 3 || ticks[2] != 5 {
		t.Fatalf("rollover ticks = %v, want [1 3 5]", ticks)
	}
}

func TestModuleSetGate(t *testing.T) {
	m, err := NewModule(WithCVSource(0, cv.Static{100, 100, 2000, 100}))
	if err != nil {
		t.Fatal(err)
	}
	m.SetGate(0, true)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ADSR{Phase: envelope.ADSRAttack}) {
		t.Fatalf("after gate high = %v", got)
	}
	m.SetGate(0, true) // no edge
	m.Tick()
	m.SetGate(0, false)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ADSR{Phase: envelope.ADSRRelease}) {
		t.Fatalf("after gate low = %v", got)
	}
}

func TestModuleGateAsTrigger(t *testing.T) {
	m, err := NewModule(WithInitialMode(envelope.KindACRC), WithGateAsTrigger(true),
		WithCVSource(0, cv.Static{100, 100, 2000, 0}))
	if err != nil {
		t.Fatal(err)
	}
	m.SetGate(0, true)
	m.Tick()
	if got := m.Status(0).Mode; got != (envelope.ACRC{Phase: envelope.ACRCAttack}) {
		t.Fatalf("gate did not fire acrc: %v", got)
	}
}
