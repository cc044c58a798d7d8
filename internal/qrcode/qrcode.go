// Package qrcode generates the scannable PNG images embedded into ticket
// documents. It is a thin wrapper around github.com/skip2/go-qrcode that adds
// input validation and sentinel errors.
package qrcode

import (
	"errors"

	qr "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent     = errors.New("qrcode: content must not be empty")
	ErrFailedToGenerate = errors.New("qrcode: failed to generate image")
)

// Generate encodes content into a size x size PNG image.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}

	return png, nil
}
