// README: Overlay layout derived purely from frame dimensions.
package composite

// Layout places the overlay band, map thumbnail, and text column on a
// frame of the given size. Every measurement is a fraction of the frame
// dimensions, so the output is resolution independent.
type Layout struct {
	Width  int
	Height int

	BandX      int
	BandY      int
	BandWidth  int
	BandHeight int

	ThumbX    int
	ThumbY    int
	ThumbSize int

	TextX     int
	TextY     int
	LinePitch int
	FontSize  float64
}

// ComputeLayout derives the overlay geometry for a W×H frame.
func ComputeLayout(width, height int) Layout {
	band := height / 8
	thumb := width/8 - 30
	return Layout{
		Width:  width,
		Height: height,

		BandX:      width / 8,
		BandY:      height - band,
		BandWidth:  3 * width / 4,
		BandHeight: band,

		ThumbX:    width/8 + 10,
		ThumbY:    height - band + 15,
		ThumbSize: thumb,

		TextX:     width/8 + thumb + 20,
		TextY:     height - band + 35,
		LinePitch: band / 5,
		FontSize:  float64(band) / 7,
	}
}
