package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
	"gorm.io/gorm"
)

// unscopedTemplate preloads the template even after it was soft-deleted, so
// purchase and download history keeps its titles.
func unscopedTemplate(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Count(&n).Error
	return n > 0, err
}

// Add inserts the item; the unique (user_id, template_id) index turns a race into ErrDuplicate.
func (r *CartRepository) Add(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *CartRepository) Remove(ctx context.Context, userID, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Delete(&models.CartItem{}).Error
}

func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Purchase, error) {
	var out []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Template", unscopedTemplate).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *PurchaseRepository) Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Count(&n).Error
	return n > 0, err
}

// Create records the purchase and removes the template from the buyer's cart in
// one transaction. A second purchase of the same template is ErrDuplicate.
func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return translate(err)
		}
		return tx.Where("user_id = ? AND template_id = ?", p.UserID, p.TemplateID).
			Delete(&models.CartItem{}).Error
	})
}

// Revenue sums every purchase amount.
func (r *PurchaseRepository) Revenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

type DownloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

func (r *DownloadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Download, error) {
	var out []models.Download
	err := r.db.WithContext(ctx).
		Preload("Template", unscopedTemplate).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Create records the download and bumps the template's downloads_count in one transaction.
func (r *DownloadRepository) Create(ctx context.Context, d *models.Download) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return translate(err)
		}
		return tx.Unscoped().Model(&models.Template{}).
			Where("id = ?", d.TemplateID).
			UpdateColumn("downloads_count", gorm.Expr("downloads_count + 1")).Error
	})
}
