package repository

import (
	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns pointer to repo along with the db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) GetUser(id uint) (*models.User, error) {
	user := &models.User{}

	if err := r.db.First(user, id).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// FirstAdmin returns any user holding the admin role. Used as the
// fallback target when no rostered on-call user matches.
func (r *UserRepository) FirstAdmin() (*models.User, error) {
	user := &models.User{}

	if err := r.db.Where("role = ?", models.RoleAdmin).Order("id asc").First(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}
