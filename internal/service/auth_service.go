package service

import (
	"errors"
	"fmt"
	"strings"

	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/pkg/config"
	"plateguard-backend/pkg/session"
	"plateguard-backend/pkg/validator"

	"github.com/google/uuid"
)

var (
	// ErrValidation marks bad input; handlers map it to 400. Wrap it
	// with the field detail: fmt.Errorf("%w: ...", ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	SignUp(req *SignUpRequest) (*AuthResponse, error)
	SignIn(email, password string) (*AuthResponse, error)
	CreateTestAccount(req *SignUpRequest) (*AuthResponse, error)
	GetProfile(id uuid.UUID) (*model.UserResponse, error)
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse carries the sanitized user plus the issued session
// token. The token also travels in the session cookie; it is echoed in
// the body for non-browser clients.
type AuthResponse struct {
	User  model.UserResponse `json:"user"`
	Token string             `json:"sessionToken"`
}

type authService struct {
	userRepo repository.UserRepository
	cfg      config.SessionConfig
}

func NewAuthService(userRepo repository.UserRepository, cfg config.SessionConfig) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) SignUp(req *SignUpRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.respond(user)
}

func (s *authService) SignIn(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

// CreateTestAccount is the signup variant used by demo tooling: all
// fields required but no email-format or password-length rules, so
// throwaway credentials like "x@y"/"test" work.
func (s *authService) CreateTestAccount(req *SignUpRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.respond(user)
}

func (s *authService) GetProfile(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(ErrUserNotFound, err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) respond(user *model.User) (*AuthResponse, error) {
	token, err := session.Issue(s.cfg.Secret, user.ID, s.cfg.TTL)
	if err != nil {
		return nil, errors.New("failed to issue session token")
	}
	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}
