package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"conduit-backend/models"
)

// TokenClaims is the identity payload carried by every issued token.
type TokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies identity tokens with a shared HMAC secret.
type TokenCodec struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenCodec(secret []byte, expiration time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, expiration: expiration}
}

func (t *TokenCodec) Sign(user *models.User) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(t.secret)
}

// Parse verifies the signature and expiry and returns the claims. Any failure
// is returned as-is; callers decide whether that means 401 or anonymous.
func (t *TokenCodec) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}
