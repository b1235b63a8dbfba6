package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	stripePeriod = 96
	stripeWidth  = 24
)

var (
	colorBackground = color.RGBA{26, 26, 46, 255}
	colorFallback   = color.RGBA{255, 0, 255, 255}
	colorOutline    = color.RGBA{0, 0, 0, 96}
	colorOverlay    = color.RGBA{0, 0, 0, 128}
)

// parseHex parses "#rrggbb" into an opaque colour
func parseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("failed to parse colour %q: %w", s, err)
	}
	return color.RGBA{r, g, b, 255}, nil
}

// parsePalette converts sheet colours. Unparseable entries are left out.
func parsePalette(sheets map[string]string) map[string]color.RGBA {
	p := make(map[string]color.RGBA, len(sheets))
	for name, hex := range sheets {
		if c, err := parseHex(hex); err == nil {
			p[name] = c
		}
	}
	return p
}

// shade darkens c a little for every row and column of the sheet cell so that
// animation frames and variants stay distinguishable without artwork
func shade(c color.RGBA, col, row int) color.RGBA {
	f := 1 - 0.08*float64((col+row)%4)
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// lighten moves c towards white by t in [0,1]
func lighten(c color.RGBA, t float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*t)
	}
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

// stripeXs returns the left edges of the background stripes visible on a
// screen of width w for a horizontal background shift
func stripeXs(shift float64, w int) []float64 {
	start := math.Mod(shift, stripePeriod)
	if start > 0 {
		start -= stripePeriod
	}
	var xs []float64
	for x := start; x < float64(w); x += stripePeriod {
		xs = append(xs, x)
	}
	return xs
}

// visible reports whether a size x size tile at (x, y) touches a w x h screen
func visible(x, y, size float64, w, h int) bool {
	return x+size > 0 && y+size > 0 && x < float64(w) && y < float64(h)
}

// screenSurface draws placeholder tiles straight onto the ebiten screen
type screenSurface struct {
	screen     *ebiten.Image
	palette    map[string]color.RGBA
	background color.RGBA
}

func (s *screenSurface) Clear() {
	s.screen.Fill(s.background)
}

func (s *screenSurface) DrawBackground(shift float64) {
	w, h := s.screen.Bounds().Dx(), s.screen.Bounds().Dy()
	c := lighten(s.background, 0.08)
	for _, x := range stripeXs(shift, w) {
		vector.DrawFilledRect(s.screen, float32(x), 0, stripeWidth, float32(h), c, false)
	}
}

func (s *screenSurface) DrawTile(sheet string, col, row int, size, x, y float64) {
	w, h := s.screen.Bounds().Dx(), s.screen.Bounds().Dy()
	if !visible(x, y, size, w, h) {
		return
	}
	c, ok := s.palette[sheet]
	if !ok {
		c = colorFallback
	}
	vector.DrawFilledRect(s.screen, float32(x), float32(y), float32(size), float32(size), shade(c, col, row), false)
	vector.StrokeRect(s.screen, float32(x)+0.5, float32(y)+0.5, float32(size)-1, float32(size)-1, 1, colorOutline, false)
}
