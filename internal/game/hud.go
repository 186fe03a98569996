package game

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudX          = 8
	hudLineHeight = 16
)

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines(ebiten.ActualTPS(), ebiten.ActualFPS())

	panelHeight := float32(len(lines)*hudLineHeight + 8)
	vector.DrawFilledRect(screen, 0, 0, 320, panelHeight, color.RGBA{R: 0, G: 0, B: 0, A: 160}, false)
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, hudX, hudLineHeight*(i+1), color.White)
	}

	ebitenutil.DebugPrintAt(screen, "S: snapshot  O: open track  H: HUD  Esc/Q: quit", hudX, g.height-20)
}

func (g *Game) hudLines(tps, fps float64) []string {
	w, h := g.field.Size()
	lines := []string{
		fmt.Sprintf("%s  %.0fx%.0f", g.cfg.Variant, w, h),
		fmt.Sprintf("particles: %d  segments: %d", g.stats.Particles, g.stats.Segments),
		fmt.Sprintf("TPS: %.1f  FPS: %.1f", tps, fps),
	}

	if path := g.track.Track(); path != "" {
		pos, total := g.track.Position()
		lines = append(lines, fmt.Sprintf("track: %s %s/%s  level: %.2f",
			filepath.Base(path), formatDuration(pos), formatDuration(total), g.level))
	} else {
		lines = append(lines, "track: none")
	}

	if g.lastErr != nil {
		lines = append(lines, "error: "+g.lastErr.Error())
	}
	return lines
}
