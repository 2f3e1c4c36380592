package envgen

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cbegin/envgen-go/internal/cv"
	"github.com/cbegin/envgen-go/internal/dac"
	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/pattern"
)

func TestRenderPatternADSRCycle(t *testing.T) {
	rec, err := RenderPattern(200, "^ .60 v", WithCVSource(0, cv.Static{10, 10, 2000, 20}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	values := rec.Values(0)
	if len(values) != 200 {
		t.Fatalf("len = %d", len(values))
	}
	if values[0] != 0 || values[30] != 2000 {
		t.Fatalf("unexpected shape: v[0]=%d v[30]=%d", values[0], values[30])
	}
	rolls := rec.Rollovers(0)
	if len(rolls) != 1 || rolls[0] <= 62 || rolls[0] > 62+21 {
		t.Fatalf("rollovers = %v", rolls)
	}
	for _, v := range values[rolls[0]:] {
		if v != 0 {
			t.Fatalf("output after rollover = %d", v)
		}
	}
}

func TestRenderChannelsFromSeparateScripts(t *testing.T) {
	a, err := pattern.Parse("!")
	if err != nil {
		t.Fatal(err)
	}
	src := cv.Static{4, 4, 4095, 0}
	rec, err := Render(20, []*pattern.Script{nil, a},
		WithChannels(2), WithInitialMode(envelope.KindACRC),
		WithCVSource(0, src), WithCVSource(1, src))
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range rec.Values(0) {
		if v != 0 {
			t.Fatal("unscripted channel produced output")
		}
	}
	if !reflect.DeepEqual(rec.Rollovers(1), []int{10}) {
		t.Fatalf("channel 1 rollovers = %v, want [10]", rec.Rollovers(1))
	}
}

func TestRenderRejectsExtraScripts(t *testing.T) {
	if _, err := Render(1, []*pattern.Script{nil, nil}); err == nil {
		t.Fatal("expected error for more scripts than channels")
	}
	if _, err := RenderPattern(1, "^x"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderKeepsConfiguredSink(t *testing.T) {
	extra := dac.NewRecorder(1)
	rec, err := RenderPattern(10, "^", WithSink(extra), WithCVSource(0, cv.Static{3, 3, 3, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(extra.Values(0), rec.Values(0)) {
		t.Fatal("configured sink saw different values")
	}
}

func TestWriteWAVFile(t *testing.T) {
	rec, err := RenderPattern(100, "^.49v", WithCVSource(0, cv.Static{9, 9, 3000, 9}))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "env.wav")
	if err := WriteWAVFile(path, rec, 1000); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := dac.ReadWAV(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(back.Values(0), rec.Values(0)) {
		t.Fatal("wav round trip mismatch")
	}
}
