package kmscon

// RGB is an 8-bit-per-channel color. It is a comparable value type so that
// styles can be checked for byte-exact equality.
type RGB struct {
	R, G, B uint8
}

// Attr describes the style of one terminal cell. Attr is comparable; the
// compositor skips a cell only when its stored Attr compares equal to the
// incoming one.
type Attr struct {
	// Fg and Bg are the resolved foreground and background colors.
	Fg RGB
	Bg RGB

	// Bold selects the bold font variant.
	Bold bool

	// Underline and Italic are forwarded to the font rasterizer.
	Underline bool
	Italic    bool

	// Inverse swaps foreground and background at blit time.
	Inverse bool
}
