package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService prepares cover art for embedding.
//
// Apple serves artwork as WebP or JPEG at the requested rendition size;
// ImageService decodes whatever arrives, scales it to the configured square
// size, and re-encodes it as JPEG, the format players expect in an APIC
// frame.
//
// Example:
//
//	svc := NewImageService()
//	cover, err := svc.PrepareCover(artworkBytes, 512)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover scales an image to fit within size x size pixels and encodes
// it as JPEG.
//
// The aspect ratio is preserved; images already within bounds are only
// re-encoded. The Catmull-Rom algorithm is used for high-quality scaling.
func (s *ImageService) PrepareCover(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > size || height > size {
		ratio := float64(width) / float64(height)
		if ratio > 1 {
			width = size
			height = int(float64(size) / ratio)
		} else {
			height = size
			width = int(float64(size) * ratio)
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
