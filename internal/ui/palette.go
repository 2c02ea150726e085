package ui

import (
	"image/color"
	"math"
)

var (
	windowColor      = color.RGBA{R: 12, G: 12, B: 24, A: 255}
	boardColor       = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}
	gridColor        = color.RGBA{R: 13, G: 13, B: 13, A: 13}
	borderColor      = color.RGBA{R: 70, G: 70, B: 120, A: 255}
	eyeColor         = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	highlightColor   = color.RGBA{R: 100, G: 100, B: 100, A: 100}
	textColor        = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	dimTextColor     = color.RGBA{R: 150, G: 150, B: 170, A: 255}
	overlayColor     = color.RGBA{R: 0, G: 0, B: 0, A: 178}
	gameOverColor    = color.RGBA{R: 255, G: 71, B: 87, A: 255}
	globalEventColor = color.RGBA{R: 140, G: 140, B: 160, A: 255}
)

// foodPalette holds the two stops of each food gradient; item i uses
// entry i mod len.
var foodPalette = [10][2]color.RGBA{
	{{R: 0xff, G: 0x6b, B: 0x81, A: 255}, {R: 0xff, G: 0x47, B: 0x57, A: 255}},
	{{R: 0xff, G: 0xa5, B: 0x02, A: 255}, {R: 0xff, G: 0x7f, B: 0x50, A: 255}},
	{{R: 0x2e, G: 0xd5, B: 0x73, A: 255}, {R: 0x26, G: 0xde, B: 0x81, A: 255}},
	{{R: 0x53, G: 0x52, B: 0xed, A: 255}, {R: 0x37, G: 0x42, B: 0xfa, A: 255}},
	{{R: 0xff, G: 0x47, B: 0x57, A: 255}, {R: 0xff, G: 0x6b, B: 0x81, A: 255}},
	{{R: 0x7b, G: 0xed, B: 0x9f, A: 255}, {R: 0x2e, G: 0xd5, B: 0x73, A: 255}},
	{{R: 0x70, G: 0xa1, B: 0xff, A: 255}, {R: 0x53, G: 0x52, B: 0xed, A: 255}},
	{{R: 0xff, G: 0x7f, B: 0x50, A: 255}, {R: 0xff, G: 0xa5, B: 0x02, A: 255}},
	{{R: 0x2e, G: 0xd5, B: 0x73, A: 255}, {R: 0x7b, G: 0xed, B: 0x9f, A: 255}},
	{{R: 0x37, G: 0x42, B: 0xfa, A: 255}, {R: 0x70, G: 0xa1, B: 0xff, A: 255}},
}

// foodColors returns the outer and inner colour of food item i.
func foodColors(i int) (color.RGBA, color.RGBA) {
	p := foodPalette[i%len(foodPalette)]
	return p[1], p[0]
}

// shade adds amount to every channel, clamped to [0,255].
func shade(c color.RGBA, amount int) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(min(255, max(0, int(v)+amount)))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// withAlpha scales c to opacity a in [0,1]. RGBA is premultiplied, so
// the colour channels scale too.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// segmentBrightness fades body segments towards the tail, never below 0.4.
func segmentBrightness(index, length int) float64 {
	if index == 0 || length == 0 {
		return 1
	}
	return math.Max(0.4, 1-float64(index)/float64(length)*0.6)
}
