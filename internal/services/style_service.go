package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const warnOldImageKept = "El estilo se actualizó pero no se pudo borrar la imagen anterior"

// ImageFile is an uploaded image on its way to the blob store.
type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// StyleFields are the optional metadata fields of an upload or update, as
// the admin forms send them.
type StyleFields struct {
	Nombre *string
	Estilo *string
	Precio *string
	Imagen *string
}

type styleInput struct {
	Nombre string
	Estilo int
	Precio decimal.Decimal
	Imagen string
}

type UploadResult struct {
	Key   string        `json:"key"`
	Style *domain.Style `json:"estilo,omitempty"`
}

type StyleUpdateResult struct {
	Style   *domain.Style `json:"estilo"`
	Warning string        `json:"warning,omitempty"`
}

// StyleService couples style rows with their images in the blob store.
type StyleService struct {
	styles  repository.StyleRepository
	blobs   blob.Store
	catalog *CatalogService
	newKey  func(ext string) string
}

func NewStyleService(styles repository.StyleRepository, blobs blob.Store, catalog *CatalogService) *StyleService {
	return &StyleService{styles: styles, blobs: blobs, catalog: catalog, newKey: NewImageKey}
}

// NewImageKey returns a random blob key keeping the file extension.
func NewImageKey(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "." + ext
}

// Upload stores the image under a fresh key. When nombre, estilo and precio
// are all present a style row pointing at the key is created as well.
func (s *StyleService) Upload(ctx context.Context, file *ImageFile, meta StyleFields) (*UploadResult, error) {
	if file == nil || file.Body == nil {
		return nil, ErrMissingImage
	}

	var input *styleInput
	if trimmed(meta.Nombre) != "" && trimmed(meta.Estilo) != "" && trimmed(meta.Precio) != "" {
		in, err := parseStyleInput(meta)
		if err != nil {
			return nil, err
		}
		input = &in
	}

	key, err := s.put(ctx, file)
	if err != nil {
		return nil, err
	}
	res := &UploadResult{Key: key}
	if input == nil {
		return res, nil
	}

	input.Imagen = key
	style, err := s.create(ctx, *input)
	if err != nil {
		s.discard(ctx, key)
		return nil, err
	}
	res.Style = style
	return res, nil
}

// Create inserts a style for an image that was already uploaded.
func (s *StyleService) Create(ctx context.Context, meta StyleFields) (*domain.Style, error) {
	if trimmed(meta.Nombre) == "" || trimmed(meta.Estilo) == "" || trimmed(meta.Precio) == "" {
		return nil, ErrMissingFields
	}
	if trimmed(meta.Imagen) == "" {
		return nil, ErrMissingImage
	}
	in, err := parseStyleInput(meta)
	if err != nil {
		return nil, err
	}
	in.Imagen = trimmed(meta.Imagen)
	return s.create(ctx, in)
}

func (s *StyleService) create(ctx context.Context, in styleInput) (*domain.Style, error) {
	style := &domain.Style{Estilo: in.Estilo, Nombre: in.Nombre, Imagen: in.Imagen, Precio: in.Precio}
	if err := s.styles.Create(ctx, style); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx)
	return style, nil
}

// Update applies the given fields. A new file is uploaded before the row is
// touched; the previous image is removed only after the new key is stored.
func (s *StyleService) Update(ctx context.Context, id uint64, fields StyleFields, file *ImageFile) (*StyleUpdateResult, error) {
	current, err := s.styles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrStyleNotFound
	}

	next := *current
	if v := trimmed(fields.Nombre); v != "" {
		next.Nombre = v
	}
	if v := trimmed(fields.Estilo); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, ErrInvalidCollection
		}
		next.Estilo = n
	}
	if v := trimmed(fields.Precio); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil || p.IsNegative() {
			return nil, ErrInvalidPrice
		}
		next.Precio = p
	}

	uploaded := ""
	if file != nil && file.Body != nil {
		key, err := s.put(ctx, file)
		if err != nil {
			return nil, err
		}
		uploaded = key
		next.Imagen = key
	} else if v := trimmed(fields.Imagen); v != "" {
		next.Imagen = v
	}

	if err := s.styles.Update(ctx, &next); err != nil {
		if uploaded != "" {
			s.discard(ctx, uploaded)
		}
		return nil, err
	}
	s.catalog.Invalidate(ctx)

	res := &StyleUpdateResult{Style: &next}
	if old := current.Imagen; old != "" && old != next.Imagen {
		if err := s.blobs.Delete(ctx, old); err != nil {
			log.Printf("style %d: delete previous image %s error: %v", id, old, err)
			res.Warning = warnOldImageKept
		}
	}
	return res, nil
}

// Delete removes the image first and refuses to drop the row when that
// fails, so no row ever points at a blob that may or may not exist.
func (s *StyleService) Delete(ctx context.Context, id uint64) error {
	current, err := s.styles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrStyleNotFound
	}

	if current.Imagen != "" {
		if err := s.blobs.Delete(ctx, current.Imagen); err != nil {
			log.Printf("style %d: delete image %s error: %v", id, current.Imagen, err)
			return fmt.Errorf("%w: %v", ErrBlobDelete, err)
		}
	}

	if err := s.styles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStyleNotFound
		}
		return err
	}
	s.catalog.Invalidate(ctx)
	return nil
}

func (s *StyleService) put(ctx context.Context, file *ImageFile) (string, error) {
	key := s.newKey(filepath.Ext(file.Filename))
	if err := s.blobs.Put(ctx, key, file.ContentType, file.Body); err != nil {
		log.Printf("upload image %s error: %v", key, err)
		return "", fmt.Errorf("%w: %v", ErrBlobUpload, err)
	}
	return key, nil
}

// discard removes a blob nothing references anymore.
func (s *StyleService) discard(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Printf("discard orphan image %s error: %v", key, err)
	}
}

func parseStyleInput(meta StyleFields) (styleInput, error) {
	estilo, err := strconv.Atoi(trimmed(meta.Estilo))
	if err != nil || estilo < 1 {
		return styleInput{}, ErrInvalidCollection
	}
	precio, err := decimal.NewFromString(trimmed(meta.Precio))
	if err != nil || precio.IsNegative() {
		return styleInput{}, ErrInvalidPrice
	}
	return styleInput{Nombre: trimmed(meta.Nombre), Estilo: estilo, Precio: precio}, nil
}
