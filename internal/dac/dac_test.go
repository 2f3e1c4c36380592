package dac

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRecorderTracksRollovers(t *testing.T) {
	r := NewRecorder(2)
	r.Write(0, 10, false)
	r.Write(1, 20, false)
	r.Write(0, 0, true)
	r.Write(5, 1, true)
	if got := r.Values(0); !reflect.DeepEqual(got, []uint16{10, 0}) {
		t.Fatalf("values = %v", got)
	}
	if got := r.Rollovers(0); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("rollovers = %v", got)
	}
	if r.Len() != 2 || r.Channels() != 2 {
		t.Fatalf("len=%d channels=%d", r.Len(), r.Channels())
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(1), NewRecorder(1)
	Multi{a, b}.Write(0, 7, true)
	if a.Values(0)[0] != 7 || b.Values(0)[0] != 7 || len(b.Rollovers(0)) != 1 {
		t.Fatal("write not fanned out")
	}
}

func TestPCM16(t *testing.T) {
	if PCM16(0) != 0 || PCM16(4095) != 32760 || PCM16(60000) != 32760 {
		t.Fatalf("unexpected mapping: %d %d %d", PCM16(0), PCM16(4095), PCM16(60000))
	}
}

func TestWAVRoundTrip(t *testing.T) {
	rec := NewRecorder(2)
	for i := 0; i < 64; i++ {
		rec.Write(0, uint16(i*64), false)
		rec.Write(1, uint16(4095-i*64), false)
	}
	path := filepath.Join(t.TempDir(), "trace.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteWAV(f, rec, 1000); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	got, err := ReadWAV(in)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for ch := 0; ch < 2; ch++ {
		if !reflect.DeepEqual(got.Values(ch), rec.Values(ch)) {
			t.Fatalf("channel %d mismatch:\n got %v\nwant %v", ch, got.Values(ch), rec.Values(ch))
		}
	}
}

func TestWriteWAVRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := WriteWAV(f, NewRecorder(0), 1000); err == nil {
		t.Fatal("expected error for empty recording")
	}
	if err := WriteWAV(f, NewRecorder(1), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
