package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// KeySource returns the verification key for a key id.
type KeySource interface {
	Key(ctx context.Context, kid string) (any, error)
}

var signingMethods = []string{
	"RS256", "RS384", "RS512",
	"PS256", "PS384", "PS512",
	"ES256", "ES384", "ES512",
	"EdDSA",
}

// JWTVerifier verifies bearer tokens signed by the identity service.
type JWTVerifier struct {
	keys   KeySource
	parser *jwt.Parser
}

// NewJWTVerifier creates a JWTVerifier. Only asymmetric algorithms are accepted.
func NewJWTVerifier(keys KeySource) *JWTVerifier {
	return &JWTVerifier{
		keys:   keys,
		parser: jwt.NewParser(jwt.WithValidMethods(signingMethods)),
	}
}

// Verify checks the token signature and standard claims and returns its issuer.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (Issuer, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, ErrIdentityUnavailable) {
			return Issuer{}, err
		}
		return Issuer{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	iss := issuerFromClaims(claims, IssuerTypeUser)
	if iss.UserID == "" {
		return Issuer{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return iss, nil
}
