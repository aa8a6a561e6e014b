package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidRememberToken indicates the remember-me token failed verification.
var ErrInvalidRememberToken = errors.New("invalid remember-me token")

// rememberClaims extends the registered claims with the owning user id.
type rememberClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// NewRememberToken mints a signed HS256 remember-me token for the user.
// It re-establishes a session after the server-side session entry expires.
func NewRememberToken(userID int64, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, rememberClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign remember token: %w", err)
	}
	return signed, nil
}

// VerifyRememberToken validates a remember-me token and returns the user id
// it was minted for. Expired, malformed, or wrongly signed tokens yield
// ErrInvalidRememberToken.
func VerifyRememberToken(tokenString string, secret []byte) (int64, error) {
	claims := &rememberClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidRememberToken
	}

	return claims.UserID, nil
}
