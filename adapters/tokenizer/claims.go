package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims carries the wallet address as subject and the expiry.
type AccessClaims struct {
	jwt.RegisteredClaims
}
