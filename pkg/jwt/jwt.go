package jwt

import (
	"errors"
	"time"

	"go-vaccine-registration/config"
	"go-vaccine-registration/pkg/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const WizardToken TokenType = "wizard"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	WizardID  uuid.UUID `json:"wizard_id"`
	TokenType TokenType `json:"token_type"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
	clock  clock.Clock
}

func NewJWTService(cfg config.JWTConfig, clk clock.Clock) *JWTService {
	return &JWTService{config: cfg, clock: clk}
}

// GenerateWizardToken signs a token that lets its bearer drive wizardID.
// It returns the token and its expiry.
func (s *JWTService) GenerateWizardToken(wizardID uuid.UUID) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.config.AccessExpiry)

	claims := Claims{
		WizardID:  wizardID,
		TokenType: WizardToken,
		TokenID:   uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wizardID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signedToken, expiresAt, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != WizardToken || claims.WizardID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
