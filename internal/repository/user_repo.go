package repository

import (
	"encoding/json"

	"plateguard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	Update(user *model.User) error
	UpdateSettings(id uuid.UUID, settings json.RawMessage) error
	Delete(id uuid.UUID) error
	CountOwned(id uuid.UUID) (items int64, wastes int64, err error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) UpdateSettings(id uuid.UUID, settings json.RawMessage) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("settings", settings).Error
}

func (r *userRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}

// CountOwned reports how many inventory items and waste records still
// reference the user; deletion is blocked while either is non-zero.
func (r *userRepo) CountOwned(id uuid.UUID) (int64, int64, error) {
	var items, wastes int64
	if err := r.db.Model(&model.InventoryItem{}).Where("user_id = ?", id).Count(&items).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.WasteRecord{}).Where("user_id = ?", id).Count(&wastes).Error; err != nil {
		return 0, 0, err
	}
	return items, wastes, nil
}
