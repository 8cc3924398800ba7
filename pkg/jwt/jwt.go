package jwt

import (
	"errors"
	"fmt"
	"time"

	"clinic-backoffice/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrNotAccessToken  = errors.New("not an access token")
	ErrMissingIdentity = errors.New("token carries no user")
)

// Claims is the payload of tokens issued by the clinic's auth service.
type Claims struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	TokenType TokenType `json:"token_type"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

// JWTService verifies HS256 tokens signed with the secret shared with the auth service.
type JWTService struct {
	secret []byte
	expiry time.Duration
	parser *jwt.Parser
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		expiry: cfg.AccessExpiry,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}
}

// GenerateAccessToken signs an access token the way the auth service does. Used by tooling and tests.
func (s *JWTService) GenerateAccessToken(userID int64, email, userType string) (string, string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		UserType:  userType,
		TokenType: AccessToken,
		TokenID:   uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.TokenID, nil
}

// ValidateToken checks the signature and time claims of any token type.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// ValidateAccessToken is ValidateToken restricted to access tokens that name a user.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != AccessToken {
		return nil, ErrNotAccessToken
	}
	if claims.UserID < 1 || claims.TokenID == "" {
		return nil, ErrMissingIdentity
	}
	return claims, nil
}
