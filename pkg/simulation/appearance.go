package simulation

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// AppearanceKind tells the renderer how an agent wants to be drawn.
type AppearanceKind int

const (
	AppearanceColor AppearanceKind = iota
	AppearanceImage
)

// Appearance is a render hint: either a solid colour or a reference to an image.
// The engine never interprets it, shells resolve it.
type Appearance struct {
	Kind  AppearanceKind
	Color color.RGBA
	Image string
}

// namedColors are the choices offered by the flock editor.
var namedColors = map[string]string{
	"black":   "#000000",
	"blue":    "#0000ff",
	"cyan":    "#00ffff",
	"gray":    "#808080",
	"green":   "#00ff00",
	"magenta": "#ff00ff",
	"orange":  "#ffc800",
	"pink":    "#ffafaf",
	"red":     "#ff0000",
	"white":   "#ffffff",
	"yellow":  "#ffff00",
}

// DefaultAppearance is used for flocks created without an explicit look.
var DefaultAppearance = ColorAppearance(color.RGBA{B: 255, A: 255})

// ColorAppearance draws agents as filled circles of colour c.
func ColorAppearance(c color.Color) Appearance {
	r, g, b, a := c.RGBA()
	return Appearance{
		Kind:  AppearanceColor,
		Color: color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)},
	}
}

// ImageAppearance draws agents with the image identified by ref.
func ImageAppearance(ref string) Appearance {
	return Appearance{Kind: AppearanceImage, Image: ref}
}

// ColorNames lists the accepted colour names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for n := range namedColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts a colour name ("red") or a hex triplet ("#ff8800", "#f80").
func ParseColor(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidParameter, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// String returns "#rrggbb" for colours and "image:<ref>" for images.
func (a Appearance) String() string {
	if a.Kind == AppearanceImage {
		return "image:" + a.Image
	}
	return fmt.Sprintf("#%02x%02x%02x", a.Color.R, a.Color.G, a.Color.B)
}

// Blend mixes the appearance colour toward other by t in [0, 1], in Lab space.
// Image appearances are returned unchanged.
func (a Appearance) Blend(other color.Color, t float64) Appearance {
	if a.Kind != AppearanceColor {
		return a
	}
	from, ok := colorful.MakeColor(a.Color)
	if !ok {
		return a
	}
	to, ok := colorful.MakeColor(other)
	if !ok {
		return a
	}
	r, g, b := from.BlendLab(to, t).Clamped().RGB255()
	return Appearance{Kind: AppearanceColor, Color: color.RGBA{R: r, G: g, B: b, A: a.Color.A}}
}
