package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload identifies a caller. Wallet is the player's wallet address
// and doubles as the node id claim on peer-link tokens.
type Payload struct {
	Wallet   string `json:"wallet"`
	Username string `json:"username"`
}

func NewJWTToken(claims jwt.MapClaims, secret []byte) (string, error) {
	claims["exp"] = time.Now().Add(30 * 24 * time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

func ParseJWTToken(tokenString string, secret []byte) (*Payload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || !token.Valid {
		return nil, errors.New("invalid jwt token")
	}

	username, ok1 := claims["username"].(string)
	wallet, ok2 := claims["wallet"].(string)

	ok = ok1 && ok2

	if !ok || username == "" || wallet == "" {
		return nil, errors.New("invalid token")
	}

	payload := &Payload{
		Username: username,
		Wallet:   wallet,
	}

	return payload, nil
}
