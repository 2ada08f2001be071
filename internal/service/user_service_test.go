package service

import (
	"encoding/json"
	"testing"

	"plateguard-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user          *model.User
	items, wastes int64
	deleted       bool
	savedSettings json.RawMessage
}

func (s *stubUserRepo) Create(user *model.User) error { return nil }
func (s *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) FindAll() ([]model.User, error) {
	if s.user == nil {
		return nil, nil
	}
	return []model.User{*s.user}, nil
}
func (s *stubUserRepo) Update(user *model.User) error { return nil }
func (s *stubUserRepo) UpdateSettings(id uuid.UUID, settings json.RawMessage) error {
	s.savedSettings = settings
	if s.user != nil {
		s.user.Settings = settings
	}
	return nil
}
func (s *stubUserRepo) Delete(id uuid.UUID) error { s.deleted = true; return nil }
func (s *stubUserRepo) CountOwned(id uuid.UUID) (int64, int64, error) {
	return s.items, s.wastes, nil
}

func seededUserRepo(items, wastes int64) (*stubUserRepo, uuid.UUID) {
	id := uuid.New()
	repo := &stubUserRepo{
		user: &model.User{
			BaseModel: model.BaseModel{ID: id},
			Email:     "cook@example.com",
			Name:      "Cook",
			Role:      model.RoleUser,
		},
		items:  items,
		wastes: wastes,
	}
	return repo, id
}

func TestDeleteUserUnknown(t *testing.T) {
	repo, _ := seededUserRepo(0, 0)
	svc := NewUserService(repo)

	err := svc.DeleteUser(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, repo.deleted)
}

func TestDeleteUserBlockedWhileOwningRecords(t *testing.T) {
	t.Run("owns inventory items", func(t *testing.T) {
		repo, id := seededUserRepo(3, 0)
		err := NewUserService(repo).DeleteUser(id)
		assert.ErrorIs(t, err, ErrUserHasRecords)
		assert.False(t, repo.deleted)
	})

	t.Run("owns waste records", func(t *testing.T) {
		repo, id := seededUserRepo(0, 1)
		err := NewUserService(repo).DeleteUser(id)
		assert.ErrorIs(t, err, ErrUserHasRecords)
		assert.False(t, repo.deleted)
	})
}

func TestDeleteUserClean(t *testing.T) {
	repo, id := seededUserRepo(0, 0)
	err := NewUserService(repo).DeleteUser(id)
	assert.NoError(t, err)
	assert.True(t, repo.deleted)
}

func TestSaveSettings(t *testing.T) {
	t.Run("stores the blob", func(t *testing.T) {
		repo, id := seededUserRepo(0, 0)
		blob := json.RawMessage(`{"theme":"dark","currency":"EUR"}`)

		user, err := NewUserService(repo).SaveSettings(id, blob)
		require.NoError(t, err)
		assert.JSONEq(t, string(blob), string(user.Settings))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		repo, id := seededUserRepo(0, 0)
		_, err := NewUserService(repo).SaveSettings(id, json.RawMessage(`{"theme":`))
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, repo.savedSettings)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		repo, id := seededUserRepo(0, 0)
		_, err := NewUserService(repo).SaveSettings(id, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, _ := seededUserRepo(0, 0)
		_, err := NewUserService(repo).SaveSettings(uuid.New(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
