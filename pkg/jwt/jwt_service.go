package jwt

import (
	"errors"
	"time"

	"foodgram/domain"

	"github.com/golang-jwt/jwt/v4"
)

const (
	issuer   = "FOODGRAM"
	tokenTTL = 24 * time.Hour
)

type (
	// JWTService validates bearer tokens issued by the identity provider.
	// GenerateTokenUser exists for tooling and tests; no endpoint issues tokens.
	JWTService interface {
		GenerateTokenUser(userID uint) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (uint, error)
	}

	jwtUserClaim struct {
		UserID uint `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateTokenUser(userID uint) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, domain.ErrTokenInvalid
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (uint, error) {
	t, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrTokenInvalid
	}
	if !t.Valid {
		return 0, domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == 0 {
		return 0, domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}
