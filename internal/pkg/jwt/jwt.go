package jwt

import (
	"errors"
	"time"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.NewKind("invalid token", errs.ErrUnauthorized)
	ErrExpiredToken = errs.NewKind("token expired", errs.ErrUnauthorized)
)

const issuer = "slot-booking"

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Club   string    `json:"club,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into a caller identity.
func (c *Claims) Identity() (user.Identity, error) {
	role, err := user.NewRole(c.Role)
	if err != nil {
		return user.Identity{}, ErrInvalidToken
	}
	id := user.Identity{ID: c.UserID, Role: role}
	if c.Club != "" {
		club, err := user.NewClub(c.Club)
		if err != nil {
			return user.Identity{}, ErrInvalidToken
		}
		id.Club = &club
	}
	return id, nil
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

func (s *Service) Duration() time.Duration {
	return s.tokenDuration
}

func (s *Service) GenerateToken(identity user.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: identity.ID,
		Role:   identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}
	if identity.Club != nil {
		claims.Club = identity.Club.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
