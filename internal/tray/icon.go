package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// GetIcon renders a simple 16x16 gamepad-ish glyph as PNG. Generated in
// code so the binary carries no separate asset.
func GetIcon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	body := color.RGBA{R: 0x3a, G: 0x7b, B: 0xd5, A: 0xff}
	dot := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y := 5; y < 11; y++ {
		for x := 2; x < 14; x++ {
			img.Set(x, y, body)
		}
	}
	img.Set(4, 7, dot)
	img.Set(5, 8, dot)
	img.Set(11, 7, dot)
	img.Set(12, 8, dot)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
