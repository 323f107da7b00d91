// README: Composite drawing; frame + band + map thumbnail + text lines.
package composite

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"geosnap/internal/modules/camera"
	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/position"
)

// ErrMissingPrerequisite is returned when compositing is attempted without
// a position or address. No drawing happens in that case.
var ErrMissingPrerequisite = errors.New("composite: missing prerequisite")

const brandLabel = "GeoSnap"

var overlayFont = func() *sfnt.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic("composite: parse embedded font: " + err.Error())
	}
	return f
}()

// Compose builds the annotated photograph: the frame as base layer, a
// semi-transparent band along the bottom, the map snapshot scaled into a
// square thumbnail, and four text lines. The output always has exactly the
// frame's pixel dimensions.
func Compose(frame camera.Frame, addr geocode.Address, pos position.Position, snapshot image.Image, now time.Time) (*image.RGBA, error) {
	if pos.IsZero() || addr.IsZero() || frame.Image == nil {
		return nil, ErrMissingPrerequisite
	}

	l := ComputeLayout(frame.Width, frame.Height)
	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))

	// Base layer.
	draw.Draw(canvas, canvas.Bounds(), frame.Image, frame.Image.Bounds().Min, draw.Src)

	// Band: half-transparent dark fill so text stays legible over any frame.
	bandRect := image.Rect(l.BandX, l.BandY, l.BandX+l.BandWidth, l.BandY+l.BandHeight)
	draw.Draw(canvas, bandRect, image.NewUniform(color.NRGBA{A: 128}), image.Point{}, draw.Over)

	// Map thumbnail, scaled into a fixed square; aspect distortion accepted.
	if snapshot != nil {
		thumbRect := image.Rect(l.ThumbX, l.ThumbY, l.ThumbX+l.ThumbSize, l.ThumbY+l.ThumbSize)
		xdraw.ApproxBiLinear.Scale(canvas, thumbRect, snapshot, snapshot.Bounds(), xdraw.Src, nil)
	}

	face, err := opentype.NewFace(overlayFont, &opentype.FaceOptions{
		Size:    l.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	y := l.TextY
	for _, line := range OverlayLines(addr, pos, now) {
		drawer.Dot = fixed.P(l.TextX, y)
		drawer.DrawString(line)
		y += l.LinePitch
	}

	// Branding label near the band's top-right, independent of the column.
	brandWidth := font.MeasureString(face, brandLabel).Ceil()
	drawer.Dot = fixed.P(l.BandX+l.BandWidth-brandWidth-20, l.TextY)
	drawer.DrawString(brandLabel)

	return canvas, nil
}
