package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	p := NewImageProcessor()
	src := encodePNG(t, 640, 320)
	require.True(t, p.IsImage(src))

	thumb, err := p.Thumbnail(src)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, ThumbnailSize, cfg.Width)
	assert.Equal(t, ThumbnailSize/2, cfg.Height)
}

func TestThumbnail_NotAnImage(t *testing.T) {
	p := NewImageProcessor()
	assert.False(t, p.IsImage([]byte("%PDF-1.7")))

	_, err := p.Thumbnail([]byte("%PDF-1.7"))
	assert.Error(t, err)
}
