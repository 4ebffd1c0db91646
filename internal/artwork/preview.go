package artwork

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"github.com/hazadus/go-vinyl/internal/data"
)

// Preview рисует обложку в терминале полублоками: width колонок на height строк.
// Каждая строка вмещает два пикселя по вертикали.
func Preview(v *data.Visual, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("некорректный размер превью: %dx%d", width, height)
	}

	img, err := Decode(v)
	if err != nil {
		return "", err
	}

	scaled := resize.Resize(uint(width), uint(height*2), img, resize.Bilinear)
	return halfBlocks(scaled), nil
}

func halfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
