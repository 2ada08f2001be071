package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

// bcryptCost is deliberately above the library default; password
// hashing is a signup/signin-only operation.
const bcryptCost = 12

// User represents an account that owns inventory items and records
// waste events.
type User struct {
	BaseModel
	Email    string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string          `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Role     string          `gorm:"type:varchar(20);not null;default:'USER'" json:"role,omitempty"`
	Settings json.RawMessage `gorm:"type:jsonb" json:"settings,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
