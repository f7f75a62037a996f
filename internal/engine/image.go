package engine

// Image is a palette indexed frame buffer. Colour 0 is transparent.
type Image struct {
	width  int
	height int
	pix    []byte
}

func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{width: width, height: height, pix: make([]byte, width*height)}
}

// ImageFromRows builds an image from rows of colour digits ('0'-'9', 'a'-'f').
// Any other rune is treated as transparent.
func ImageFromRows(rows ...string) *Image {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	img := NewImage(w, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			img.SetPixel(x, y, hexColour(r[x]))
		}
	}
	return img
}

func hexColour(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return 0
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

func (img *Image) Pixel(x, y int) byte {
	if !img.inBounds(x, y) {
		return 0
	}
	return img.pix[y*img.width+x]
}

func (img *Image) SetPixel(x, y int, c byte) {
	if !img.inBounds(x, y) {
		return
	}
	img.pix[y*img.width+x] = c
}

func (img *Image) Fill(c byte) {
	for i := range img.pix {
		img.pix[i] = c
	}
}

func (img *Image) FillRect(x, y, w, h int, c byte) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			img.SetPixel(xx, yy, c)
		}
	}
}

// DrawTransparentImage copies src onto img with its top-left corner at (x, y).
// Transparent source pixels leave the destination untouched and anything
// outside img is clipped.
func (img *Image) DrawTransparentImage(src *Image, x, y int) {
	if src == nil {
		return
	}
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= img.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= img.width {
				continue
			}
			if c := src.pix[sy*src.width+sx]; c != 0 {
				img.pix[dy*img.width+dx] = c
			}
		}
	}
}
