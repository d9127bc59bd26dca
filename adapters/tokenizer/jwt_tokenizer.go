package tokenizer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/marketauth/core"
	"github.com/layer-3/marketauth/ports"
)

// DefaultLeeway absorbs clock drift between the issuing and validating hosts.
const DefaultLeeway = 2 * time.Second

// JWTTokenizer implements the SessionTokenizer interface using HS256 JWTs
type JWTTokenizer struct {
	secret []byte
	leeway time.Duration
}

// NewJWTTokenizer creates a new JWT tokenizer keyed by secret
func NewJWTTokenizer(secret []byte) ports.SessionTokenizer {
	return &JWTTokenizer{secret: secret, leeway: DefaultLeeway}
}

// Issue signs an access token for subject
func (j *JWTTokenizer) Issue(subject string, now time.Time, lifetime time.Duration) (string, *core.SessionClaims, error) {
	issuedAt := now.Truncate(time.Second)
	expiresAt := issuedAt.Add(lifetime)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signedToken, &core.SessionClaims{
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate parses tokenStr and checks it has not expired as of now. Expiry is
// checked here rather than by the jwt validator so the leeway boundary is
// inclusive.
func (j *JWTTokenizer) Validate(tokenStr string, now time.Time) (*core.SessionClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %v: %w", err, core.ErrInvalidToken)
	}

	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, core.ErrInvalidToken
	}

	expiresAt := claims.ExpiresAt.Time
	if now.After(expiresAt.Add(j.leeway)) {
		return nil, core.ErrTokenExpired
	}

	session := &core.SessionClaims{
		Subject:   claims.Subject,
		ExpiresAt: expiresAt,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	return session, nil
}
