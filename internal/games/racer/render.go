package racer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/physics"
	"github.com/vovakirdan/tui-racer/internal/race"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// Visual characters for rendering
const (
	WallChar        = '█'
	FinishChar      = '▒'
	CarBodyChar     = '▓'
	CollectibleChar = '◆'
	PickupChar      = '★'
)

// Minimum screen size for a playable view
const (
	MinScreenW = 40
	MinScreenH = 12
)

// headingGlyphs are car noses for the eight compass directions, clockwise
// from up.
var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

var carColors = []core.Color{core.ColorBrightBlue, core.ColorBrightRed}

// viewport maps world units onto the screen rows between the HUD lines.
type viewport struct {
	x, y, w, h int
	sx, sy     float64 // world units per cell
}

func newViewport(dst *core.Screen, arenaW, arenaH float64) viewport {
	vp := viewport{x: 0, y: 1, w: dst.Width(), h: dst.Height() - 2}
	vp.sx = arenaW / float64(vp.w)
	vp.sy = arenaH / float64(vp.h)
	return vp
}

// cellBox returns the world area covered by viewport cell (cx, cy).
func (vp viewport) cellBox(cx, cy int) core.Box {
	return core.Box{X: float64(cx) * vp.sx, Y: float64(cy) * vp.sy, W: vp.sx, H: vp.sy}
}

// toScreen returns the screen cell containing a world point.
func (vp viewport) toScreen(p core.Vec2) (int, int) {
	cx := core.Clamp(int(math.Floor(p.X/vp.sx)), 0, vp.w-1)
	cy := core.Clamp(int(math.Floor(p.Y/vp.sy)), 0, vp.h-1)
	return vp.x + cx, vp.y + cy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "Cannot start race"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Cannot start race", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, msg)
		return
	}

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Screen too small (min %dx%d)", MinScreenW, MinScreenH))
		return
	}

	s := g.session
	vp := newViewport(dst, g.cfg.Arena.Width, g.cfg.Arena.Height)
	level := s.Level()

	g.drawTrack(dst, vp, level)
	for _, c := range s.Collectibles() {
		if !c.Collected {
			x, y := vp.toScreen(c.Box.Center())
			dst.SetColored(x, y, CollectibleChar, core.ColorBrightCyan)
		}
	}
	for _, p := range s.Pickups() {
		x, y := vp.toScreen(p.Box.Center())
		dst.SetColored(x, y, PickupChar, core.ColorBrightYellow)
	}
	for i, e := range s.Entrants() {
		drawCar(dst, vp, e.Vehicle, carColors[i%len(carColors)])
	}

	g.drawHUD(dst, s)
	g.drawOverlay(dst, s)
}

// drawTrack draws walls and the finish line. A cell is a wall when the
// world point at its center is; the finish line is drawn on every cell it
// touches so thin lines stay visible.
func (g *Game) drawTrack(dst *core.Screen, vp viewport, level *track.Level) {
	for cy := 0; cy < vp.h; cy++ {
		for cx := 0; cx < vp.w; cx++ {
			cell := vp.cellBox(cx, cy)
			c := cell.Center()
			switch {
			case level.Map.IsWallAt(c.X, c.Y):
				dst.SetColored(vp.x+cx, vp.y+cy, WallChar, core.ColorGray)
			case level.Kind == track.KindRace && cell.Intersects(level.Finish):
				dst.SetColored(vp.x+cx, vp.y+cy, FinishChar, core.ColorBrightGreen)
			}
		}
	}
}

// drawCar fills the cells whose centers lie inside the rotated body and
// marks the nose direction at the body's center.
func drawCar(dst *core.Screen, vp viewport, v *physics.Vehicle, color core.Color) {
	corners := v.Corners()
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	center := v.Center()
	hw, hh := v.Width/2, v.Height/2
	x0, y0 := vp.toScreen(core.Vec2{X: minX, Y: minY})
	x1, y1 := vp.toScreen(core.Vec2{X: maxX, Y: maxY})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := vp.cellBox(x-vp.x, y-vp.y).Center()
			local := c.Sub(center).Rotate(-v.Angle)
			if math.Abs(local.X) <= hw && math.Abs(local.Y) <= hh {
				dst.SetColored(x, y, CarBodyChar, color)
			}
		}
	}

	x, y := vp.toScreen(center)
	dst.SetColored(x, y, headingGlyph(v.Angle), color)
}

// headingGlyph returns the arrow closest to the heading.
func headingGlyph(angle float64) rune {
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// drawHUD draws the status line and the key help line.
func (g *Game) drawHUD(dst *core.Screen, s *race.Session) {
	level := s.Level()
	status := fmt.Sprintf("Level %d/%d %s", s.LevelIndex()+1, s.LevelCount(), level.Name)

	var right string
	if level.Kind == track.KindTrial {
		got := 0
		for _, c := range s.Collectibles() {
			if c.Collected {
				got++
			}
		}
		right = fmt.Sprintf("Time %2d  Collected %d/%d", s.TimeLeft(), got, len(s.Collectibles()))
		if top := s.Board().Top(level.ID); len(top) > 0 {
			right += fmt.Sprintf("  Best %d", top[0].Score)
		}
	} else {
		for i, e := range s.Entrants() {
			if i > 0 {
				right += "  "
			}
			right += fmt.Sprintf("%s: %d", e.Name, e.Score)
		}
	}

	dst.DrawTextColored(1, 0, status, core.ColorWhite)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorYellow)

	var help string
	switch g.mode {
	case ModeDuel:
		help = "P1 WASD  P2 Arrows  P pause  R restart  Q quit"
	default:
		help = "Arrows/WASD drive  P pause  R restart  Q quit"
	}
	dst.DrawTextCenteredColored(dst.Height()-1, help, core.ColorGray)
}

func (g *Game) drawOverlay(dst *core.Screen, s *race.Session) {
	switch {
	case s.Paused():
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.Phase() == race.PhaseCountdown:
		drawCenteredMessage(dst, fmt.Sprintf("%d", s.Countdown()), "Get ready!")
	case s.Phase() == race.PhaseLevelComplete || s.Phase() == race.PhaseTimeExpired:
		out := s.Outcome()
		sub := "Next level coming up"
		if out.GameComplete {
			sub = "Back to level 1"
		}
		drawCenteredMessage(dst, out.Message, sub)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-utf8.RuneCountInString(subtitle))/2, boxY+3, subtitle)
}
