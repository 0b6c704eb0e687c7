package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"babytrack/internal/core"
)

// Color is an opaque sRGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MustHex parses #RRGGBB and panics on malformed input. Use it for
// compile-time palette constants only.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses #RRGGBB (the leading # is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HSL converts hue (degrees), saturation and lightness (0..1) to a Color.
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	if s == 0 {
		v := channel(l)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return Color{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Saturation and lightness shared by every interpolated hue.
const (
	hueSaturation = 0.70
	hueLightness  = 0.50
)

// Hue returns the hue of item index out of total when spreading them over
// [start, end). It depends on nothing but its arguments.
func Hue(index, total int, start, end float64) float64 {
	if total <= 0 {
		return start
	}
	return start + float64(index)*(end-start)/float64(total)
}

// HueColor is the Color at Hue(index, total, start, end).
func HueColor(index, total int, start, end float64) Color {
	return HSL(Hue(index, total, start, end), hueSaturation, hueLightness)
}

// ColorScheme assigns a color to the item at index of total, with label.
type ColorScheme interface {
	ColorAt(index, total int, label string) Color
}

// HueRange interpolates a hue by rank.
type HueRange struct {
	Start, End float64
}

func (r HueRange) ColorAt(index, total int, _ string) Color {
	return HueColor(index, total, r.Start, r.End)
}

// Palette maps categorical labels to fixed colors.
type Palette struct {
	Colors   map[string]Color
	Fallback Color
}

func (p Palette) ColorAt(_, _ int, label string) Color {
	if c, ok := p.Colors[label]; ok {
		return c
	}
	return p.Fallback
}

var (
	// WeightHues runs green to blue.
	WeightHues = HueRange{Start: 120, End: 240}
	// HeightHues runs orange to purple.
	HeightHues = HueRange{Start: 30, End: 270}
)

// HuesFor returns the hue range used for a growth field.
func HuesFor(f Field) HueRange {
	if f == Height {
		return HeightHues
	}
	return WeightHues
}

// FeedingPalette colors the feeding-type distribution.
func FeedingPalette() Palette {
	return Palette{
		Colors: map[string]Color{
			core.BreastMilk.Label(): MustHex("#4CAF50"),
			core.Formula.Label():    MustHex("#2196F3"),
			core.SolidFood.Label():  MustHex("#FF9800"),
		},
		Fallback: MustHex("#9E9E9E"),
	}
}
