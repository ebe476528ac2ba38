package simulation

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{R: 255, A: 255}},
		{"  Orange ", color.RGBA{R: 255, G: 200, A: 255}},
		{"pink", color.RGBA{R: 255, G: 175, B: 175, A: 255}},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "mauve", "#12", "#gggggg"} {
		_, err := ParseColor(bad)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "%q should be rejected", bad)
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	assert.Contains(t, names, "blue")
	assert.IsIncreasing(t, names)
	for _, n := range names {
		_, err := ParseColor(n)
		assert.NoError(t, err, n)
	}
}

func TestAppearance(t *testing.T) {
	assert.Equal(t, "#0000ff", DefaultAppearance.String())
	assert.Equal(t, "image:boid.png", ImageAppearance("boid.png").String())

	c := ColorAppearance(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	assert.Equal(t, AppearanceColor, c.Kind)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, c.Color)
}

func TestAppearance_Blend(t *testing.T) {
	red := ColorAppearance(color.RGBA{R: 255, A: 255})
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	start := red.Blend(white, 0).Color
	assert.InDelta(t, 255, int(start.R), 1)
	assert.InDelta(t, 0, int(start.G), 1)
	end := red.Blend(white, 1).Color
	assert.InDelta(t, 255, int(end.G), 1)
	assert.InDelta(t, 255, int(end.B), 1)

	half := red.Blend(white, 0.5)
	assert.Equal(t, AppearanceColor, half.Kind)
	assert.Greater(t, half.Color.G, uint8(20))
	assert.Less(t, half.Color.G, uint8(235))
	assert.Equal(t, uint8(255), half.Color.A)

	img := ImageAppearance("hawk.png")
	assert.Equal(t, img, img.Blend(white, 0.5), "images are not tinted")
}
