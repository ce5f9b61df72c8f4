package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/cache"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"

	"golang.org/x/sync/singleflight"
)

const (
	sizesCacheKey  = "catalog:tallas"
	stylesCacheKey = "catalog:estilos"
)

type Catalog struct {
	Tallas      []domain.Size       `json:"tallas"`
	Estilos     []domain.Style      `json:"estilos"`
	Colecciones []domain.Collection `json:"colecciones"`
}

type CatalogService struct {
	sizes  repository.SizeRepository
	styles repository.StyleRepository
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

func NewCatalogService(sizes repository.SizeRepository, styles repository.StyleRepository) *CatalogService {
	return &CatalogService{sizes: sizes, styles: styles, ttl: 5 * time.Minute}
}

// SetCache enables the read-through cache for public catalog reads.
func (s *CatalogService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.ttl = ttl
	}
}

func (s *CatalogService) ListSizes(ctx context.Context) ([]domain.Size, error) {
	return cachedList(ctx, s, sizesCacheKey, s.sizes.List)
}

func (s *CatalogService) ListStyles(ctx context.Context) ([]domain.Style, error) {
	return cachedList(ctx, s, stylesCacheKey, s.styles.List)
}

// Catalog is everything the order wizard needs in one read.
func (s *CatalogService) Catalog(ctx context.Context) (*Catalog, error) {
	sizes, err := s.ListSizes(ctx)
	if err != nil {
		return nil, err
	}
	styles, err := s.ListStyles(ctx)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Tallas:      sizes,
		Estilos:     styles,
		Colecciones: domain.GroupByCollection(styles),
	}, nil
}

// AdminSizes skips the cache.
func (s *CatalogService) AdminSizes(ctx context.Context) ([]domain.Size, error) {
	return s.sizes.List(ctx)
}

func (s *CatalogService) AdminStyles(ctx context.Context) ([]domain.Style, error) {
	return s.styles.List(ctx)
}

func (s *CatalogService) CreateSize(ctx context.Context, talla, nombre string) (*domain.Size, error) {
	talla, nombre = strings.TrimSpace(talla), strings.TrimSpace(nombre)
	if talla == "" || nombre == "" {
		return nil, ErrMissingFields
	}
	size := &domain.Size{Talla: talla, Nombre: nombre}
	if err := s.sizes.Create(ctx, size); err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	return size, nil
}

// UpdateSize changes the fields that are given and non-blank.
func (s *CatalogService) UpdateSize(ctx context.Context, id uint64, talla, nombre *string) (*domain.Size, error) {
	size, err := s.sizes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrSizeNotFound
	}
	if v := trimmed(talla); v != "" {
		size.Talla = v
	}
	if v := trimmed(nombre); v != "" {
		size.Nombre = v
	}
	if err := s.sizes.Update(ctx, size); err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	return size, nil
}

func (s *CatalogService) DeleteSize(ctx context.Context, id uint64) error {
	err := s.sizes.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrSizeNotFound
	case errors.Is(err, repository.ErrSizeInUse):
		return ErrSizeInUse
	case err != nil:
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate drops cached catalog reads. Failures are logged; entries
// expire on their own.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, sizesCacheKey, stylesCacheKey); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}

func cachedList[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache == nil {
		return load(ctx)
	}

	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("catalog cache get %s error: %v", key, err)
	} else if ok {
		var out []T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				log.Printf("catalog cache set %s error: %v", key, err)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
