package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"sustainbite/domain"
	"sustainbite/entities"
	"sustainbite/internal/utils"
	"sustainbite/pkg/jwt"
)

const passwordCost = 10

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		validator      *validator.Validate
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, validator *validator.Validate) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		validator:      validator,
		now:            time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	verr := domain.NewValidationError()
	verr.Merge(utils.ValidationErrors(s.validator.Struct(req)))
	// bcrypt silently truncates anything longer
	if len(req.Password) > 72 {
		verr.Add("password", "must be at most 72 bytes")
	}
	if err := verr.OrNil(); err != nil {
		return domain.UserResponse{}, err
	}

	count, err := s.userRepository.CountUsersByEmail(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if count > 0 {
		return domain.UserResponse{}, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	// the unique index catches a concurrent registration that passed the count
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	auth := domain.AuthContext{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
	}
	token, err := s.jwtService.GenerateTokenUser(auth)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{Token: token, User: auth}, nil
}
