package accounts

import (
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var signingKey = []byte(os.Getenv("AUTH_SIGNING_KEY"))

const tokenLifetime = 86400 * time.Second

var errInvalidToken = errors.New("invalid token")

func issueToken(id string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Issuer:    "accounts",
		Subject:   id,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenLifetime).Unix(),
	})
	return token.SignedString(signingKey)
}

//parseToken verifies the signature and expiry of a bearer token and
// returns the account id it was issued for.
func parseToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return signingKey, nil
	})

	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}
