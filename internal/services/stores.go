package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
)

// The store interfaces are satisfied by the repository package and by the
// in-memory store used in tests.

type TemplateStore interface {
	List(ctx context.Context, f repository.TemplateFilter) ([]models.Template, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	FindByIDForBuyer(ctx context.Context, id uuid.UUID) (*models.Template, error)
	Create(ctx context.Context, t *models.Template) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Related(ctx context.Context, t *models.Template, limit int) ([]models.Template, error)
	Count(ctx context.Context) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	EnsureProfile(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type CartStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error)
	Add(ctx context.Context, item *models.CartItem) error
	Remove(ctx context.Context, userID, templateID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type PurchaseStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Purchase, error)
	Exists(ctx context.Context, userID, templateID uuid.UUID) (bool, error)
	Create(ctx context.Context, p *models.Purchase) error
	Revenue(ctx context.Context) (int64, error)
}

type DownloadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Download, error)
	Create(ctx context.Context, d *models.Download) error
}
