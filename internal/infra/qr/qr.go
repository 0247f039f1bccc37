// Package qr renders share URLs as terminal QR codes.
package qr

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/skip2/go-qrcode"
)

// Render renders text as a QR code using ANSI background blocks, two
// columns per module. Dark modules are black on white unless invert is set.
func Render(text string, invert bool) (string, error) {
	bitmap, err := bitmap(text)
	if err != nil {
		return "", err
	}

	dark, light := "\033[40m  \033[0m", "\033[47m  \033[0m"
	if invert {
		dark, light = light, dark
	}

	var b strings.Builder
	for _, row := range bitmap {
		for _, module := range row {
			if module {
				b.WriteString(dark)
			} else {
				b.WriteString(light)
			}
		}
		b.WriteString("\033[0m\n")
	}
	return b.String(), nil
}

// RenderCompact renders text with half-block glyphs, two module rows per
// line, without colors. It fits into a TUI pane.
func RenderCompact(text string) (string, error) {
	bitmap, err := bitmap(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune(' ')
			case top:
				b.WriteRune('▄')
			case bottom:
				b.WriteRune('▀')
			default:
				b.WriteRune('█')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func bitmap(text string) ([][]bool, error) {
	if text == "" {
		return nil, errors.New("nothing to encode")
	}
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "generating qr code")
	}
	return code.Bitmap(), nil
}
