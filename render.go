package envgen

import (
	"fmt"
	"os"

	"github.com/cbegin/envgen-go/internal/dac"
	"github.com/cbegin/envgen-go/internal/pattern"
)

// Render runs a fresh module for the given number of ticks, feeding channel
// i the edges of scripts[i], and returns the DAC trace. Any sink configured
// through opts still receives every value.
func Render(ticks int, scripts []*pattern.Script, opts ...Option) (*dac.Recorder, error) {
	m, err := NewModule(opts...)
	if err != nil {
		return nil, err
	}
	if len(scripts) > m.Channels() {
		return nil, fmt.Errorf("%d scripts for %d channels", len(scripts), m.Channels())
	}
	rec := dac.NewRecorder(m.Channels())
	if m.sink != nil {
		m.sink = dac.Multi{m.sink, rec}
	} else {
		m.sink = rec
	}
	for i := 0; i < ticks; i++ {
		for ch, s := range scripts {
			m.Post(ch, s.At(i))
		}
		m.Tick()
	}
	return rec, nil
}

// RenderPattern parses one pattern and renders it on channel 0.
func RenderPattern(ticks int, src string, opts ...Option) (*dac.Recorder, error) {
	s, err := pattern.Parse(src)
	if err != nil {
		return nil, err
	}
	return Render(ticks, []*pattern.Script{s}, opts...)
}

// WriteWAVFile writes a trace to path, one frame per tick.
func WriteWAVFile(path string, rec *dac.Recorder, tickRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dac.WriteWAV(f, rec, tickRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
