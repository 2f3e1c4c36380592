// Package audio plays a control-rate envelope through the host sound card so
// it can be heard while patching.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Source renders interleaved stereo float32 frames. It is called on the
// audio goroutine.
type Source interface {
	Process(dst []float32)
}

// streamReader adapts a Source to the float32 little-endian byte stream
// ebiten's player pulls from.
type streamReader struct {
	mu     sync.Mutex
	source Source
	buf    []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 8, nil
}

func (r *streamReader) Close() error { return nil }

var (
	contextOnce  sync.Once
	audioContext *ebitaudio.Context
	contextRate  int
)

// sharedContext returns the process-wide ebiten audio context. ebiten allows
// only one, so every monitor must agree on the sample rate.
func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if contextRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", contextRate, sampleRate)
	}
	return audioContext, nil
}

// Monitor streams a Source to the sound card.
type Monitor struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

func NewMonitor(sampleRate int, source Source) (*Monitor, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := &streamReader{source: source}
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Monitor{player: pl, reader: reader}, nil
}

func (m *Monitor) Play()  { m.player.Play() }
func (m *Monitor) Pause() { m.player.Pause() }

func (m *Monitor) IsPlaying() bool { return m.player.IsPlaying() }

// SetVolume sets the output gain in [0, 1].
func (m *Monitor) SetVolume(v float64) { m.player.SetVolume(v) }

func (m *Monitor) Close() error {
	m.player.Pause()
	if err := m.player.Close(); err != nil {
		return err
	}
	return m.reader.Close()
}
