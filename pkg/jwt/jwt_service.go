package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sustainbite/domain"
)

const Issuer = "SUSTAINBITE"

type (
	JWTService interface {
		GenerateTokenUser(user domain.AuthContext) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserByToken(token string) (domain.AuthContext, error)
		TTL() time.Duration
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		issuer:    Issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) TTL() time.Duration {
	return j.ttl
}

func (j *jwtService) GenerateTokenUser(user domain.AuthContext) (string, error) {
	if user.IsZero() {
		return "", domain.ErrUnauthorized
	}

	now := j.now()
	claims := jwtUserClaim{
		user.UserID,
		user.Name,
		user.Email,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserByToken(token string) (domain.AuthContext, error) {
	if token == "" {
		return domain.AuthContext{}, domain.ErrTokenNotFound
	}

	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.AuthContext{}, domain.ErrTokenExpired
		}
		return domain.AuthContext{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.AuthContext{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.Issuer != j.issuer {
		return domain.AuthContext{}, domain.ErrTokenInvalid
	}

	return domain.AuthContext{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
