package artwork

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/hazadus/go-vinyl/internal/data"
)

// Box вписывает обложку в квадрат size×size с сохранением пропорций
func Box(v *data.Visual, size int) (image.Image, error) {
	img, err := Decode(v)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("некорректный размер обложки: %dx%d", b.Dx(), b.Dy())
	}

	scale := min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	offsetX := (float64(size) - float64(b.Dx())*scale) / 2
	offsetY := (float64(size) - float64(b.Dy())*scale) / 2

	dc := gg.NewContext(size, size)
	dc.Translate(offsetX, offsetY)
	dc.Scale(scale, scale)
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image(), nil
}

// BoxPNG возвращает обложку, вписанную в квадрат BoxSize, в формате PNG
func BoxPNG(v *data.Visual) ([]byte, error) {
	img, err := Box(v, BoxSize)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("ошибка кодирования PNG: %w", err)
	}
	return out.Bytes(), nil
}
