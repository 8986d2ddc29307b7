package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "user logged in successfully"
	MessageSuccessLogout   = "user logged out successfully"
	MessageSuccessGetMe    = "current user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "invalid email or password"

	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" form:"email" validate:"required,max=254"`
		Name     string `json:"name" form:"name" validate:"required,max=120"`
		Password string `json:"password" form:"password" validate:"required,max=72"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  AuthContext `json:"user"`
	}
)
