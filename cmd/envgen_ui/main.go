package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/cbegin/envgen-go"
	"github.com/cbegin/envgen-go/internal/audio"
	"github.com/cbegin/envgen-go/internal/cv"
	"github.com/cbegin/envgen-go/internal/envelope"
	"github.com/cbegin/envgen-go/internal/panel"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	windowW      = 900
	windowH      = 560
	uiSampleRate = 48000
	uiTickRate   = 1000
	toneHz       = 220

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	historyLen = 4096
)

var (
	bgColor       = color.RGBA{192, 192, 192, 255}
	sunkenBgColor = color.RGBA{24, 24, 32, 255}
	traceColor    = color.RGBA{80, 255, 120, 255}
	rolloverColor = color.RGBA{255, 200, 0, 255}
	ledOnColor    = color.RGBA{255, 40, 40, 255}
	ledOffColor   = color.RGBA{70, 20, 20, 255}
	sliderColor   = color.RGBA{0, 0, 128, 255}
	bevelLight    = color.RGBA{255, 255, 255, 255}
	bevelDarker   = color.RGBA{64, 64, 64, 255}
)

var knobLabels = map[envelope.Kind][4]string{
	envelope.KindADSR:     {"attack", "decay", "sustain", "release"},
	envelope.KindACRC:     {"attack", "release", "peak", "-"},
	envelope.KindACRCLoop: {"attack", "release", "peak", "-"},
	envelope.KindAHRDLoop: {"attack", "hold", "release", "delay"},
}

// history is a ring of DAC values written by the tick loop on the audio
// goroutine and read by Draw.
type history struct {
	mu       sync.Mutex
	values   []uint16
	rolls    []bool
	writePos int
}

func newHistory() *history {
	return &history{values: make([]uint16, historyLen), rolls: make([]bool, historyLen)}
}

func (h *history) Write(channel int, value uint16, rollover bool) {
	if channel != 0 {
		return
	}
	h.mu.Lock()
	h.values[h.writePos] = value
	h.rolls[h.writePos] = rollover
	h.writePos = (h.writePos + 1) % len(h.values)
	h.mu.Unlock()
}

// Snapshot copies the ring oldest-first.
func (h *history) Snapshot(values []uint16, rolls []bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.values)
	for i := range values {
		idx := (h.writePos + i) % n
		values[i] = h.values[idx]
		rolls[i] = h.rolls[idx]
	}
}

type game struct {
	module  *envgen.Module
	knobs   *cv.Knobs
	monitor *audio.Monitor
	history *history
	events  <-chan envgen.Event

	values []uint16
	rolls  []bool

	cycles   int
	muted    bool
	dragging int // knob index, -1 for none
	status   string

	textCache map[string]*ebiten.Image
}

func newGame() (*game, error) {
	knobs := cv.NewKnobs(envelope.CV{300, 600, 2500, 900})
	hist := newHistory()
	m, err := envgen.NewModule(
		envgen.WithTickRate(uiTickRate),
		envgen.WithCVSource(0, knobs),
		envgen.WithSink(hist),
	)
	if err != nil {
		return nil, err
	}
	mon, err := audio.NewMonitor(uiSampleRate, envgen.NewMonitor(m, uiSampleRate, toneHz))
	if err != nil {
		return nil, err
	}
	mon.SetVolume(0.5)
	mon.Play()
	return &game{
		module:    m,
		knobs:     knobs,
		monitor:   mon,
		history:   hist,
		events:    m.Watch(),
		values:    make([]uint16, historyLen),
		rolls:     make([]bool, historyLen),
		dragging:  -1,
		status:    "SPACE gate  T trigger  M mode  R reset  A audio",
		textCache: make(map[string]*ebiten.Image, 64),
	}, nil
}

func (g *game) Update() error {
	g.pollEvents()
	g.handleKeys()
	g.handleMouse()
	return nil
}

func (g *game) pollEvents() {
	for {
		select {
		case _, ok := <-g.events:
			if !ok {
				return
			}
			g.cycles++
		default:
			return
		}
	}
}

func (g *game) handleKeys() {
	g.module.SetGate(0, ebiten.IsKeyPressed(ebiten.KeySpace))
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.module.Post(0, envelope.Trigger)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.module.NextMode(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.module.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.muted = !g.muted
		if g.muted {
			g.monitor.Pause()
		} else {
			g.monitor.Play()
		}
	}
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for i := 0; i < 4; i++ {
			if pointInRect(mx, my, knobRect(i)) {
				g.dragging = i
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = -1
		return
	}
	if g.dragging >= 0 {
		r := knobRect(g.dragging)
		frac := clamp(float64(mx-r.Min.X)/float64(r.Dx()), 0, 1)
		g.knobs.Set(g.dragging, int(frac*float64(envelope.MaxValue)))
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	st := g.module.Status(0)

	scope := image.Rect(16, 16, windowW-16, 300)
	g.drawSunkenPanel(screen, scope)
	g.drawScope(screen, scope)

	g.drawText(screen, "MODE", 16, 316)
	g.drawLEDs(screen, st.ModeLEDs, 120, 316)
	g.drawText(screen, "STAGE", 16, 356)
	g.drawLEDs(screen, st.StageLEDs, 120, 356)
	g.drawText(screen, fmt.Sprintf("%-20s %4d  cycles %d", st.Mode, st.Value, g.cycles), 320, 316)
	g.drawText(screen, panel.Read(st.Mode).String(), 320, 356)

	labels := knobLabels[st.Mode.Kind()]
	for i := 0; i < 4; i++ {
		g.drawKnob(screen, i, labels[i])
	}
	g.drawText(screen, g.status, 16, windowH-lineH-8)
}

func (g *game) drawScope(screen *ebiten.Image, rect image.Rectangle) {
	g.history.Snapshot(g.values, g.rolls)
	w := rect.Dx() - 4
	h := float64(rect.Dy() - 4)
	for x := 0; x < w; x++ {
		idx := x * len(g.values) / w
		y := float64(rect.Max.Y-2) - h*float64(g.values[idx])/float64(envelope.MaxValue)
		ebitenutil.DrawRect(screen, float64(rect.Min.X+2+x), y, 1, 2, traceColor)
		if g.rolls[idx] {
			ebitenutil.DrawRect(screen, float64(rect.Min.X+2+x), float64(rect.Min.Y+2), 1, h, rolloverColor)
		}
	}
}

func (g *game) drawLEDs(screen *ebiten.Image, code uint8, x, y int) {
	for i, on := range panel.LEDs(code) {
		c := ledOffColor
		if on {
			c = ledOnColor
		}
		ebitenutil.DrawRect(screen, float64(x+i*36), float64(y), 24, 24, c)
	}
}

func knobRect(i int) image.Rectangle {
	y := 400 + i*30
	return image.Rect(200, y, windowW-200, y+20)
}

func (g *game) drawKnob(screen *ebiten.Image, i int, label string) {
	r := knobRect(i)
	g.drawSunkenPanel(screen, r)
	frac := float64(g.knobs.Get(i)) / float64(envelope.MaxValue)
	ebitenutil.DrawRect(screen, float64(r.Min.X+2), float64(r.Min.Y+2), frac*float64(r.Dx()-4), float64(r.Dy()-4), sliderColor)
	g.drawText(screen, fmt.Sprintf("CV%d %s", i+1, label), 16, r.Min.Y-4)
	g.drawText(screen, fmt.Sprintf("%4d", g.knobs.Get(i)), r.Max.X+12, r.Min.Y-4)
}

func (g *game) drawSunkenPanel(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w, h, sunkenBgColor)
	ebitenutil.DrawRect(screen, x, y, w-1, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, bevelDarker)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelLight)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelLight)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		w := max(1, len([]rune(msg))*7)
		img = ebiten.NewImage(w, 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 512 {
			g.textCache = make(map[string]*ebiten.Image, 64)
		}
		g.textCache[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) { return windowW, windowH }

func (g *game) Close() { _ = g.monitor.Close() }

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

func main() {
	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("envgen-go panel")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
