package kmscon

import colorful "github.com/lucasb-eyer/go-colorful"

// base8 holds the eight classic terminal colors; indices 8-15 of the
// 16-color palette are their bright variants.
var base8 = [8]RGB{
	{0x00, 0x00, 0x00}, // black
	{0xcd, 0x00, 0x00}, // red
	{0x00, 0xcd, 0x00}, // green
	{0xcd, 0xcd, 0x00}, // yellow
	{0x00, 0x00, 0xee}, // blue
	{0xcd, 0x00, 0xcd}, // magenta
	{0x00, 0xcd, 0xcd}, // cyan
	{0xe5, 0xe5, 0xe5}, // light grey
}

// DefaultPalette returns the 16-color terminal palette: the eight base
// colors followed by their bright variants.
func DefaultPalette() [16]RGB {
	var p [16]RGB
	for i, c := range base8 {
		p[i] = c
		p[i+8] = Bright(c)
	}
	return p
}

// Palette256 returns the 256-color terminal palette: the 16 base colors, a
// 6x6x6 color cube and a 24-step grayscale ramp.
func Palette256() [256]RGB {
	var p [256]RGB
	p16 := DefaultPalette()
	copy(p[:16], p16[:])

	level := func(i int) uint8 {
		if i == 0 {
			return 0
		}
		return uint8(i*40 + 55)
	}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[16+36*r+6*g+b] = RGB{level(r), level(g), level(b)}
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		p[232+i] = RGB{v, v, v}
	}
	return p
}

// Bright returns a brightened variant of c, used for the upper half of the
// 16-color palette and for bold-as-bright rendering.
func Bright(c RGB) RGB {
	h, s, l := toColorful(c).Hsl()
	l += (1 - l) * 0.5
	return fromColorful(colorful.Hsl(h, s, l))
}

// Faint blends c halfway toward the background, used for faint text.
func Faint(c, bg RGB) RGB {
	return fromColorful(toColorful(c).BlendRgb(toColorful(bg), 0.5))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	cl := c.Clamped()
	return RGB{
		R: uint8(cl.R*255 + 0.5),
		G: uint8(cl.G*255 + 0.5),
		B: uint8(cl.B*255 + 0.5),
	}
}
