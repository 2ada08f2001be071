package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrUserHasRecords = errors.New("cannot delete user with existing inventory items or waste records")

type UserService interface {
	ListUsers() ([]model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
	SaveSettings(id uuid.UUID, settings json.RawMessage) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// DeleteUser refuses while the user still owns inventory or waste
// records; those reference the user and would be orphaned.
func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return notFoundOr(ErrUserNotFound, err)
	}
	items, wastes, err := s.userRepo.CountOwned(id)
	if err != nil {
		return err
	}
	if items > 0 || wastes > 0 {
		return ErrUserHasRecords
	}
	return s.userRepo.Delete(id)
}

func (s *userService) SaveSettings(id uuid.UUID, settings json.RawMessage) (*model.User, error) {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return nil, notFoundOr(ErrUserNotFound, err)
	}
	if len(settings) == 0 || !json.Valid(settings) {
		return nil, fmt.Errorf("%w: settings must be a JSON object", ErrValidation)
	}
	if err := s.userRepo.UpdateSettings(id, settings); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(id)
}
