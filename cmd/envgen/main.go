package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cbegin/envgen-go"
	"github.com/cbegin/envgen-go/internal/cv"
	"github.com/cbegin/envgen-go/internal/dac"
	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/lfo"
	"github.com/cbegin/envgen-go/internal/panel"
	"github.com/cbegin/envgen-go/internal/pattern"
)

const defaultPattern = "^ .400 v .600"

func main() {
	var (
		modeName    = flag.String("mode", "adsr", "envelope mode: adsr|acrc|acrc-loop|ahrd-loop")
		ticks       = flag.Int("ticks", 2000, "number of control ticks to render")
		tickRate    = flag.Int("rate", envgen.DefaultTickRate, "control ticks per second (WAV sample rate)")
		patternSrc  = flag.String("pattern", "", "inline gate pattern (^ rise, v fall, ! trigger, . idle)")
		patternPath = flag.String("file", "", "path to a gate pattern file")
		loop        = flag.Bool("loop", false, "repeat the pattern until -ticks is reached")
		cvList      = flag.String("cv", "100,200,2048,300", "four comma-separated CV values (0-4095)")
		lfoCV       = flag.Int("lfo-cv", -1, "CV input (0-3) to modulate with the LFO; -1 disables")
		lfoDepth    = flag.Int("lfo-depth", 500, "LFO depth in CV units")
		lfoPeriod   = flag.Int("lfo-period", 1000, "LFO period in ticks")
		lfoWave     = flag.Int("lfo-wave", lfo.WaveTriangle, "LFO waveform: 0 saw, 1 square, 2 triangle, 3 random")
		outPath     = flag.String("out", "", "write the DAC trace to this WAV file")
		trace       = flag.Bool("trace", true, "print the LED readout on every phase change")
	)
	flag.Parse()

	kind, err := envelope.ParseKind(strings.ToLower(strings.TrimSpace(*modeName)))
	if err != nil {
		log.Fatal(err)
	}
	src, err := resolvePattern(*patternPath, *patternSrc)
	if err != nil {
		log.Fatal(err)
	}
	script, err := pattern.Parse(src)
	if err != nil {
		log.Fatalf("pattern: %v", err)
	}
	script.Loop = *loop

	base, err := parseCV(*cvList)
	if err != nil {
		log.Fatal(err)
	}
	var source cv.Source = base
	if *lfoCV >= 0 {
		if *lfoCV > 3 || *lfoPeriod <= 0 {
			log.Fatalf("invalid -lfo-cv %d / -lfo-period %d", *lfoCV, *lfoPeriod)
		}
		mod := &cv.Modulated{Base: base}
		mod.LFOs[*lfoCV] = lfo.New(*lfoDepth, uint32(*lfoPeriod), *lfoWave)
		source = mod
	}

	rec := dac.NewRecorder(1)
	m, err := envgen.NewModule(
		envgen.WithTickRate(*tickRate),
		envgen.WithInitialMode(kind),
		envgen.WithCVSource(0, source),
		envgen.WithSink(rec),
	)
	if err != nil {
		log.Fatal(err)
	}
	events := m.Watch()

	var last envelope.Mode
	cycles := 0
	for i := 0; i < *ticks; i++ {
		m.Post(0, script.At(i))
		m.Tick()

		st := m.Status(0)
		if *trace && st.Mode != last {
			fmt.Printf("%7d  %-20s %s  %4d\n", i, st.Mode, panel.Read(st.Mode), st.Value)
			last = st.Mode
		}
		for len(events) > 0 {
			ev := <-events
			cycles++
			fmt.Printf("%7d  cycle %d completed\n", ev.Tick, cycles)
		}
	}

	if *outPath != "" {
		if err := envgen.WriteWAVFile(*outPath, rec, *tickRate); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d ticks to %s\n", rec.Len(), *outPath)
	}
}

func resolvePattern(path string, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultPattern, nil
}

func parseCV(list string) (cv.Static, error) {
	var out cv.Static
	parts := strings.Split(list, ",")
	if len(parts) != len(out) {
		return out, fmt.Errorf("invalid -cv %q (expected %d comma-separated values)", list, len(out))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("invalid -cv value %q: %w", p, err)
		}
		if v < 0 || v > int(envelope.MaxValue) {
			return out, fmt.Errorf("-cv value %d outside 0-%d", v, envelope.MaxValue)
		}
		out[i] = uint16(v)
	}
	return out, nil
}
