// Package auth resolves the acting user from signed access tokens.
// Tokens are issued by an external identity provider; GenerateToken exists
// for development tooling and tests.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the user's id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

func GenerateToken(userID string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			Subject:   userID,
		},
		UserID: userID,
		Role:   string(role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns the user it names.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// validation yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, common.ErrTokenExpired
		}
		return models.User{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return models.User{}, common.ErrInvalidToken
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.User{}, common.ErrInvalidToken
	}

	return models.User{ID: claims.UserID, Role: role}, nil
}
