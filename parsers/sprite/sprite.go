// The sprite package decodes an image made of equally sized square
// tiles stacked vertically, the way listing websites pack their
// channel logos into one strip.
package sprite

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	_ "image/png"               // register the png decoder
	_ "golang.org/x/image/webp" // register the webp decoder
)

// Sheet is a decoded sprite, a single column of square tiles.
type Sheet struct {
	img  *image.NRGBA
	tile int
}

// Decode reads a sprite image whose tiles are tile pixels high and
// wide. The encoding is detected from the stream, webp and png are
// understood.
func Decode(r io.Reader, tile int) (*Sheet, error) {
	if tile <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", tile)
	}
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Sheet{img: img, tile: tile}, nil
}

// Count returns the number of complete tiles in the sheet. A partial
// tile at the bottom doesn't count.
func (s *Sheet) Count() int {
	return s.img.Bounds().Dy() / s.tile
}

// Tile returns a copy of tile i, counted from the top. The copy owns
// its pixels, the sheet can be dropped afterwards. Indexes outside
// the complete tiles return nil.
func (s *Sheet) Tile(i int) *image.NRGBA {
	if i < 0 || i >= s.Count() {
		return nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, s.tile, s.tile))
	draw.Draw(out, out.Bounds(), s.img, image.Pt(0, i*s.tile), draw.Src)
	return out
}
