package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// maxPictureEdge bounds the longest edge of stored employee pictures.
const maxPictureEdge = 512

// EncodeWebP decodes a JPEG/PNG upload, scales it down to at most
// maxPictureEdge on the longest side and re-encodes it as WebP.
func EncodeWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxPictureEdge || h > maxPictureEdge {
		if w >= h {
			h = h * maxPictureEdge / w
			w = maxPictureEdge
		} else {
			w = w * maxPictureEdge / h
			h = maxPictureEdge
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
