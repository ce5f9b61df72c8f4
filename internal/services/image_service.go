package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"

	"github.com/disintegration/imaging"
)

const DefaultImageContentType = "image/png"

// Thumbnail presets: longest side in pixels and JPEG quality.
var thumbnailSizes = map[string]struct{ maxDim, quality int }{
	"thumb":  {300, 60},
	"medium": {800, 75},
}

type Image struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type ImageService struct {
	blobs blob.Store
}

func NewImageService(blobs blob.Store) *ImageService {
	return &ImageService{blobs: blobs}
}

func ValidThumbnailSize(size string) bool {
	_, ok := thumbnailSizes[size]
	return ok
}

// Open returns the stored image, or a resized JPEG of it when size names a
// thumbnail preset. Unknown keys yield blob.ErrNotFound.
func (s *ImageService) Open(ctx context.Context, key, size string) (*Image, error) {
	obj, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	ct := obj.ContentType
	if ct == "" {
		ct = DefaultImageContentType
	}
	preset, ok := thumbnailSizes[size]
	if !ok {
		return &Image{Body: obj.Body, ContentType: ct, Size: obj.Size}, nil
	}
	defer obj.Body.Close()

	img, err := imaging.Decode(obj.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > preset.maxDim || b.Dy() > preset.maxDim {
		img = imaging.Fit(img, preset.maxDim, preset.maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(preset.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	log.Printf("image %s resized to %s: %d bytes", key, size, buf.Len())
	return &Image{
		Body:        io.NopCloser(&buf),
		ContentType: "image/jpeg",
		Size:        int64(buf.Len()),
	}, nil
}
