package gormdb

import (
	"context"
	"errors"
	"log"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"

	"gorm.io/gorm"
)

type sizeRepo struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) repository.SizeRepository {
	return &sizeRepo{db: db}
}

func (r *sizeRepo) List(ctx context.Context) ([]domain.Size, error) {
	var out []domain.Size
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		log.Printf("size list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *sizeRepo) FindByID(ctx context.Context, id uint64) (*domain.Size, error) {
	var s domain.Size
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sizeRepo) Create(ctx context.Context, size *domain.Size) error {
	return r.db.WithContext(ctx).Create(size).Error
}

func (r *sizeRepo) Update(ctx context.Context, size *domain.Size) error {
	res := r.db.WithContext(ctx).Model(&domain.Size{}).Where("id = ?", size.ID).
		Updates(map[string]any{"talla": size.Talla, "nombre": size.Nombre})
	return res.Error
}

func (r *sizeRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&domain.Order{}).Where("talla_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return repository.ErrSizeInUse
		}
		res := tx.Delete(&domain.Size{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

type styleRepo struct {
	db *gorm.DB
}

func NewStyleRepository(db *gorm.DB) repository.StyleRepository {
	return &styleRepo{db: db}
}

func (r *styleRepo) List(ctx context.Context) ([]domain.Style, error) {
	var out []domain.Style
	if err := r.db.WithContext(ctx).Order("estilo, id").Find(&out).Error; err != nil {
		log.Printf("style list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *styleRepo) FindByID(ctx context.Context, id uint64) (*domain.Style, error) {
	var s domain.Style
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *styleRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Style, error) {
	return findStyles(r.db.WithContext(ctx), ids)
}

func (r *styleRepo) Create(ctx context.Context, style *domain.Style) error {
	return r.db.WithContext(ctx).Create(style).Error
}

func (r *styleRepo) Update(ctx context.Context, style *domain.Style) error {
	res := r.db.WithContext(ctx).Model(&domain.Style{}).Where("id = ?", style.ID).
		Updates(map[string]any{
			"estilo": style.Estilo,
			"nombre": style.Nombre,
			"imagen": style.Imagen,
			"precio": style.Precio,
		})
	return res.Error
}

func (r *styleRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estilo_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Style{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func findStyles(db *gorm.DB, ids []uint64) ([]domain.Style, error) {
	var out []domain.Style
	if len(ids) == 0 {
		return out, nil
	}
	if err := db.Where("id IN ?", ids).Find(&out).Error; err != nil {
		log.Printf("style lookup error: %v", err)
		return nil, err
	}
	return out, nil
}
