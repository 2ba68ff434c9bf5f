package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ThumbnailSize is the bounding box of admin list thumbnails.
const ThumbnailSize = 160

type ImageProcessor struct {
	Size int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{Size: ThumbnailSize}
}

// IsImage reports whether data decodes as a supported raster image.
func (p *ImageProcessor) IsImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// Thumbnail fits the image inside Size x Size and encodes it as JPEG.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	thumb := imaging.Fit(img, p.Size, p.Size, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}
