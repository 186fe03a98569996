package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-backdrop/internal/config"
	"github.com/iburimskiy/particle-backdrop/internal/particle"
)

// Track is the ambient audio source the backdrop pulses to.
type Track interface {
	Open(path string) error
	Level() float64
	Track() string
	Position() (pos, total time.Duration)
}

type Game struct {
	cfg     config.Config
	field   *particle.Field
	track   Track
	dialogs Dialogs

	bg            color.NRGBA
	width, height int

	// viz
	stats    particle.Stats
	level    float64
	huePhase float64

	// state
	hud             bool
	pendingSnapshot string
	lastErr         error
}

// New wires a field to the window. The field is seeded for the configured
// window size right away; Layout reseeds it whenever the window changes.
func New(cfg config.Config, field *particle.Field, track Track, dialogs Dialogs) *Game {
	g := &Game{
		cfg:     cfg,
		field:   field,
		track:   track,
		dialogs: dialogs,
		bg:      cfg.BackgroundColor(),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		hud:     cfg.HUD,
	}
	field.Initialize(float64(g.width), float64(g.height))
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.report(g.openTrack())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.report(g.requestSnapshot())
	}

	x, y := ebiten.CursorPosition()
	g.trackPointer(x, y, ebiten.IsFocused())

	g.level = g.track.Level()
	if g.cfg.HueDrift != 0 {
		g.huePhase = math.Mod(g.huePhase+g.cfg.HueDrift+360, 360)
	}
	return nil
}

// Draw advances the field by one frame. Ebiten calls it once per display
// refresh, which is the cadence the field's velocities are tuned for.
func (g *Game) Draw(screen *ebiten.Image) {
	g.stats = g.field.Tick(g.canvas(screen))

	if g.pendingSnapshot != "" {
		path := g.pendingSnapshot
		g.pendingSnapshot = ""
		if err := writePNG(path, captureFrame(screen)); err != nil {
			g.report(err)
		} else {
			log.Printf("snapshot saved to %s", path)
		}
	}

	if g.hud {
		g.drawHUD(screen)
	}
}

// Layout resizes the surface to the window and rebuilds the particle set
// whenever the outside size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(g.width), float64(g.height))
	}
	return g.width, g.height
}

func (g *Game) canvas(screen *ebiten.Image) *screenCanvas {
	c := &screenCanvas{
		dst:         screen,
		bg:          g.bg,
		radiusScale: g.pulseScale(),
	}
	if g.cfg.HueDrift != 0 {
		fill := hueColor(g.huePhase, g.cfg.DriftSaturation, g.cfg.DriftValue, 255, g.field.Params().Color)
		c.fill = &fill
	}
	return c
}

func (g *Game) pulseScale() float64 {
	return 1 + g.cfg.PulseGain*g.level
}

// trackPointer feeds the cursor to the field, or clears it when the cursor
// is off the surface or the window lost focus.
func (g *Game) trackPointer(x, y int, focused bool) {
	if !focused || x < 0 || y < 0 || x >= g.width || y >= g.height {
		g.field.ClearPointer()
		return
	}
	g.field.SetPointer(float64(x), float64(y))
}

func (g *Game) openTrack() error {
	path, err := g.dialogs.OpenTrack()
	if err != nil || path == "" {
		return err
	}
	if err := g.track.Open(path); err != nil {
		return fmt.Errorf("open track: %w", err)
	}
	log.Printf("playing %s", path)
	return nil
}

func (g *Game) requestSnapshot() error {
	path, err := g.dialogs.SaveSnapshot()
	if err != nil || path == "" {
		return err
	}
	g.pendingSnapshot = path
	return nil
}

// report records err for the HUD and logs it; the frame loop keeps running.
func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	log.Printf("error: %v", err)
}
