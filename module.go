// Package envgen runs one or more envelope-generator channels the way the
// module's main loop does: per tick it hands each channel its pending edge
// and CV snapshot, writes the result to the DAC sink and reports completed
// cycles.
package envgen

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cbegin/envgen-go/internal/cv"
	"github.com/cbegin/envgen-go/internal/dac"
	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/gate"
)

// DefaultTickRate is the control rate used when none is configured.
const DefaultTickRate = 1000

// Event reports a completed envelope cycle, delivered through Watch().
type Event struct {
	Channel int
	Tick    uint64
	Mode    envelope.Mode // mode after the rollover
}

// Status is a channel's most recent output as seen from outside the tick
// loop.
type Status struct {
	Value     uint16
	Mode      envelope.Mode
	ModeLEDs  uint8
	StageLEDs uint8
}

type Option func(*moduleConfig)

type moduleConfig struct {
	channels      int
	tickRate      int
	initial       envelope.Kind
	sources       map[int]cv.Source
	sink          dac.Sink
	gateAsTrigger bool
}

func defaultModuleConfig() moduleConfig {
	return moduleConfig{channels: 1, tickRate: DefaultTickRate, initial: envelope.KindADSR}
}

// WithChannels sets the number of independent channels.
func WithChannels(n int) Option {
	return func(cfg *moduleConfig) {
		cfg.channels = n
	}
}

// WithTickRate sets the control rate in ticks per second. The engine itself
// counts ticks; the rate matters for audio monitoring and WAV output.
func WithTickRate(hz int) Option {
	return func(cfg *moduleConfig) {
		cfg.tickRate = hz
	}
}

// WithInitialMode selects the algorithm every channel starts in.
func WithInitialMode(k envelope.Kind) Option {
	return func(cfg *moduleConfig) {
		cfg.initial = k
	}
}

// WithCVSource feeds a channel's CV inputs from src. Channels without a
// source read all-zero CV.
func WithCVSource(channel int, src cv.Source) Option {
	return func(cfg *moduleConfig) {
		if cfg.sources == nil {
			cfg.sources = make(map[int]cv.Source)
		}
		cfg.sources[channel] = src
	}
}

// WithSink installs the DAC collaborator. It is called on the tick goroutine
// for every channel on every tick; keep it brief.
func WithSink(s dac.Sink) Option {
	return func(cfg *moduleConfig) {
		cfg.sink = s
	}
}

// WithGateAsTrigger makes SetGate report rising edges as triggers, so a gate
// patched into a trigger-controlled algorithm still fires it.
func WithGateAsTrigger(enabled bool) Option {
	return func(cfg *moduleConfig) {
		cfg.gateAsTrigger = enabled
	}
}

// menu commands queued for the tick loop
const (
	menuNone uint32 = iota
	menuReset
	menuNext
	menuSelect // + envelope.Kind
)

type channel struct {
	state  envelope.State
	source cv.Source
	cv     envelope.CV

	edges gate.Latch
	menu  atomic.Uint32

	detMu    sync.Mutex
	detector gate.Detector

	status atomic.Value // Status
}

// Module is a bank of independent envelope channels.
//
// Tick must only be called from one goroutine, the owner of the envelope
// state. Post, SetGate, SelectMode, NextMode, Reset, Status and Watch are
// safe from any goroutine; their effects land on the next tick.
type Module struct {
	tickRate int
	channels []*channel
	sink     dac.Sink
	ticks    uint64

	eventCh   chan Event
	eventChMu sync.Mutex
}

func NewModule(opts ...Option) (*Module, error) {
	cfg := defaultModuleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.channels <= 0 {
		return nil, errors.New("channel count must be positive")
	}
	if cfg.tickRate <= 0 {
		return nil, errors.New("tick rate must be positive")
	}
	if int(cfg.initial) >= len(envelope.Kinds) {
		return nil, fmt.Errorf("unknown initial mode %d", cfg.initial)
	}
	for ch := range cfg.sources {
		if ch < 0 || ch >= cfg.channels {
			return nil, fmt.Errorf("CV source for channel %d, module has %d channels", ch, cfg.channels)
		}
	}

	m := &Module{
		tickRate: cfg.tickRate,
		channels: make([]*channel, cfg.channels),
		sink:     cfg.sink,
	}
	for i := range m.channels {
		c := &channel{
			state:  envelope.NewState(cfg.initial.Initial()),
			source: cfg.sources[i],
		}
		c.detector.RiseAsTrigger = cfg.gateAsTrigger
		c.publish()
		m.channels[i] = c
	}
	return m, nil
}

func (m *Module) Channels() int { return len(m.channels) }
func (m *Module) TickRate() int { return m.tickRate }

// Ticks returns how many ticks have run. Call it from the tick goroutine.
func (m *Module) Ticks() uint64 { return m.ticks }

func (m *Module) channel(ch int) *channel {
	if ch < 0 || ch >= len(m.channels) {
		return nil
	}
	return m.channels[ch]
}

// Post queues an edge for the channel's next tick. Only the latest edge
// posted within one tick is delivered.
func (m *Module) Post(ch int, a envelope.TriggerAction) {
	if c := m.channel(ch); c != nil {
		c.edges.Post(a)
	}
}

// SetGate samples the channel's gate jack and posts the resulting edge.
func (m *Module) SetGate(ch int, high bool) {
	c := m.channel(ch)
	if c == nil {
		return
	}
	c.detMu.Lock()
	a := c.detector.Sample(high)
	c.detMu.Unlock()
	c.edges.Post(a)
}

// SelectMode switches the channel to k at its initial phase on the next
// tick. The output continues from its current value.
func (m *Module) SelectMode(ch int, k envelope.Kind) {
	if c := m.channel(ch); c != nil && int(k) < len(envelope.Kinds) {
		c.menu.Store(menuSelect + uint32(k))
	}
}

// NextMode advances the channel to the next algorithm in menu order.
func (m *Module) NextMode(ch int) {
	if c := m.channel(ch); c != nil {
		c.menu.Store(menuNext)
	}
}

// Reset returns the channel's algorithm to its initial phase.
func (m *Module) Reset(ch int) {
	if c := m.channel(ch); c != nil {
		c.menu.Store(menuReset)
	}
}

// Status returns the channel's latest output and mode.
func (m *Module) Status(ch int) Status {
	c := m.channel(ch)
	if c == nil {
		return Status{}
	}
	return c.status.Load().(Status)
}

// Tick advances every channel by one control tick.
func (m *Module) Tick() {
	for i, c := range m.channels {
		c.applyMenu()

		if c.source != nil {
			c.source.Sample(&c.cv)
		}
		value, rollover := envelope.Update(&c.state, c.edges.Take(), &c.cv)
		c.publish()

		if m.sink != nil {
			m.sink.Write(i, value, rollover)
		}
		if rollover {
			m.sendEvent(Event{Channel: i, Tick: m.ticks, Mode: c.state.Mode})
		}
	}
	m.ticks++
}

func (c *channel) applyMenu() {
	cmd := c.menu.Swap(menuNone)
	switch {
	case cmd == menuNone:
	case cmd == menuReset:
		c.state.Reset()
	case cmd == menuNext:
		c.state.SetMode(envelope.Next(c.state.Mode))
	case cmd >= menuSelect:
		c.state.SetMode(envelope.Kind(cmd - menuSelect).Initial())
	}
}

func (c *channel) publish() {
	c.status.Store(Status{
		Value:     c.state.LastValue,
		Mode:      c.state.Mode,
		ModeLEDs:  envelope.ShowMode(c.state.Mode),
		StageLEDs: envelope.ShowStage(c.state.Mode),
	})
}

func (m *Module) sendEvent(ev Event) {
	m.eventChMu.Lock()
	ch := m.eventCh
	m.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}

// Watch returns a channel that receives an Event for every rollover.
//
// The channel is buffered (cap 64); events are dropped rather than stalling
// the tick loop. Only the most recent Watch() channel receives events.
func (m *Module) Watch() <-chan Event {
	ch := make(chan Event, 64)
	m.eventChMu.Lock()
	m.eventCh = ch
	m.eventChMu.Unlock()
	return ch
}
