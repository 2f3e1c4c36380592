// Package dac holds the consumers of envelope output: the per-tick sink
// interface, an in-memory recorder and a WAV writer.
package dac

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cbegin/envgen-go/internal/envelope"
)

// Sink receives every channel's output once per tick.
type Sink interface {
	Write(channel int, value uint16, rollover bool)
}

// Recorder keeps a trace of every value written to it.
type Recorder struct {
	values    [][]uint16
	rollovers [][]int
}

func NewRecorder(channels int) *Recorder {
	return &Recorder{
		values:    make([][]uint16, channels),
		rollovers: make([][]int, channels),
	}
}

func (r *Recorder) Write(channel int, value uint16, rollover bool) {
	if channel < 0 || channel >= len(r.values) {
		return
	}
	if rollover {
		r.rollovers[channel] = append(r.rollovers[channel], len(r.values[channel]))
	}
	r.values[channel] = append(r.values[channel], value)
}

func (r *Recorder) Channels() int { return len(r.values) }

// Values returns the recorded trace of one channel.
func (r *Recorder) Values(channel int) []uint16 { return r.values[channel] }

// Rollovers returns the tick indices on which a channel completed a cycle.
func (r *Recorder) Rollovers(channel int) []int { return r.rollovers[channel] }

// Len returns the number of ticks recorded on the longest channel.
func (r *Recorder) Len() int {
	n := 0
	for _, v := range r.values {
		if len(v) > n {
			n = len(v)
		}
	}
	return n
}

// Multi fans one tick out to several sinks.
type Multi []Sink

func (m Multi) Write(channel int, value uint16, rollover bool) {
	for _, s := range m {
		s.Write(channel, value, rollover)
	}
}

// PCM16 maps a 12-bit DAC value onto the positive half of signed 16-bit PCM,
// keeping the unipolar shape of the control voltage.
func PCM16(v uint16) int {
	if v > envelope.MaxValue {
		v = envelope.MaxValue
	}
	return int(v) << 3
}

// WriteWAV encodes a recording as 16-bit PCM, one WAV channel per envelope
// channel and one frame per tick. sampleRate is the tick rate.
func WriteWAV(w io.WriteSeeker, rec *Recorder, sampleRate int) error {
	if rec == nil || rec.Channels() == 0 {
		return errors.New("dac: nothing recorded")
	}
	if sampleRate <= 0 {
		return errors.New("dac: sample rate must be positive")
	}
	chans := rec.Channels()
	frames := rec.Len()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: sampleRate},
		Data:           make([]int, frames*chans),
		SourceBitDepth: 16,
	}
	for ch := 0; ch < chans; ch++ {
		for i, v := range rec.values[ch] {
			buf.Data[i*chans+ch] = PCM16(v)
		}
	}

	enc := wav.NewEncoder(w, sampleRate, 16, chans, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("dac: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dac: close wav: %w", err)
	}
	return nil
}

// ReadWAV decodes a file written by WriteWAV back into DAC values.
func ReadWAV(r io.ReadSeeker) (*Recorder, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("dac: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("dac: read wav: %w", err)
	}
	chans := int(dec.NumChans)
	rec := NewRecorder(chans)
	for i, s := range buf.Data {
		if s < 0 {
			s = 0
		}
		rec.Write(i%chans, uint16(s>>3), false)
	}
	return rec, nil
}
