package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

// EnsureProfile inserts a users row for an identity issued elsewhere (Supabase
// Auth). An existing row is left untouched.
func (r *UserRepository) EnsureProfile(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(u).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// RoleByID reads only the role column. A missing row is ErrNotFound.
func (r *UserRepository) RoleByID(ctx context.Context, id uuid.UUID) (models.Role, error) {
	var row struct{ Role string }
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return models.RoleNone, translate(err)
	}
	role, _ := models.ParseRole(row.Role)
	return role, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
