package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
	"gorm.io/gorm"
)

// Sort keys accepted by TemplateFilter.
const (
	SortCreatedAt      = "created_at"
	SortPrice          = "price"
	SortViewsCount     = "views_count"
	SortDownloadsCount = "downloads_count"
	SortTitle          = "title"
)

var sortOrders = map[string]string{
	SortCreatedAt:      "created_at DESC",
	SortPrice:          "price ASC",
	SortViewsCount:     "views_count DESC",
	SortDownloadsCount: "downloads_count DESC",
	SortTitle:          "title ASC",
}

// ValidSort reports whether s is an accepted sort key.
func ValidSort(s string) bool {
	_, ok := sortOrders[s]
	return ok
}

// TemplateFilter narrows a template listing. A nil Status matches every status;
// a nil OwnerID matches every creator.
type TemplateFilter struct {
	Status   *models.TemplateStatus
	OwnerID  *uuid.UUID
	Category string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context, f TemplateFilter) ([]models.Template, error) {
	q := r.db.WithContext(ctx).Model(&models.Template{}).Preload("Creator")

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.OwnerID != nil {
		q = q.Where("creator_id = ?", *f.OwnerID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?)", like, like, like)
	}

	order, ok := sortOrders[f.Sort]
	if !ok {
		order = sortOrders[SortCreatedAt]
	}
	q = q.Order(order)

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var out []models.Template
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var t models.Template
	if err := r.db.WithContext(ctx).Preload("Creator").First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// FindByIDForBuyer also returns soft-deleted templates. Callers must have
// checked the purchase first; a paid-for template stays downloadable.
func (r *TemplateRepository) FindByIDForBuyer(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var t models.Template
	if err := r.db.WithContext(ctx).Unscoped().First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *models.Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

// Update applies column updates and reloads the row. Concurrent updates are last-write-wins.
func (r *TemplateRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Template, error) {
	res := r.db.WithContext(ctx).Model(&models.Template{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the template and drops it from every cart. Purchases and
// downloads keep pointing at the soft-deleted row.
func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Template{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("template_id = ?", id).Delete(&models.CartItem{}).Error
	})
}

func (r *TemplateRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Template{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Related returns approved templates in the same category, most downloaded first.
func (r *TemplateRepository) Related(ctx context.Context, t *models.Template, limit int) ([]models.Template, error) {
	var out []models.Template
	err := r.db.WithContext(ctx).
		Where("status = ? AND category = ? AND id <> ?", models.StatusApproved, t.Category, t.ID).
		Order("downloads_count DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *TemplateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Template{}).Count(&n).Error
	return n, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
