package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePNG(t *testing.T, store blob.Store, key, contentType string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, store.Put(context.Background(), key, contentType, &buf))
}

func TestImageService_Open(t *testing.T) {
	store, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)
	storePNG(t, store, "big.png", "image/png", 1200, 600)
	storePNG(t, store, "small.png", "", 100, 50)

	s := NewImageService(store)
	ctx := context.Background()

	tests := []struct {
		name        string
		key         string
		size        string
		contentType string
		width       int
		height      int
	}{
		{name: "original", key: "big.png", contentType: "image/png", width: 1200, height: 600},
		{name: "thumb", key: "big.png", size: "thumb", contentType: "image/jpeg", width: 300, height: 150},
		{name: "medium", key: "big.png", size: "medium", contentType: "image/jpeg", width: 800, height: 400},
		{name: "small images are not enlarged", key: "small.png", size: "medium", contentType: "image/jpeg", width: 100, height: 50},
		{name: "unknown preset serves original", key: "small.png", size: "huge", contentType: DefaultImageContentType, width: 100, height: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := s.Open(ctx, tt.key, tt.size)
			require.NoError(t, err)
			defer img.Body.Close()
			assert.Equal(t, tt.contentType, img.ContentType)

			data, err := io.ReadAll(img.Body)
			require.NoError(t, err)
			assert.Equal(t, img.Size, int64(len(data)))

			decoded, err := imaging.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, tt.width, decoded.Bounds().Dx())
			assert.Equal(t, tt.height, decoded.Bounds().Dy())
		})
	}

	_, err = s.Open(ctx, "missing.png", "")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestValidThumbnailSize(t *testing.T) {
	assert.True(t, ValidThumbnailSize("thumb"))
	assert.True(t, ValidThumbnailSize("medium"))
	assert.False(t, ValidThumbnailSize(""))
	assert.False(t, ValidThumbnailSize("large"))
}
