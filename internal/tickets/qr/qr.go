package qr

import (
	"github.com/skip2/go-qrcode"
)

// Generator renders a ticket's QR code text as a PNG.
type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = 256
	}
	return &Generator{size: size}
}

func (g *Generator) PNG(text string) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, g.size)
}
