// Package identity verifies bearer tokens issued by the external identity
// provider and extracts the subject they carry.
package identity

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token says about its bearer.
type Identity struct {
	UID   string
	Email string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// JWTVerifier accepts HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (v *JWTVerifier) Verify(_ context.Context, rawToken string) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.Wrap(ErrInvalidToken, "verify")
	}
	return identityFromClaims(claims)
}

// NewVerifier picks the decoder for the deployment.
func NewVerifier(secret string, insecure bool) Verifier {
	if insecure {
		return NewInsecureDecoder()
	}
	return NewJWTVerifier(secret)
}

// InsecureDecoder reads claims without checking the signature. It exists for
// local development against an auth emulator that signs with throwaway keys.
type InsecureDecoder struct {
	parser *jwt.Parser
}

func NewInsecureDecoder() *InsecureDecoder {
	return &InsecureDecoder{parser: jwt.NewParser()}
}

func (d *InsecureDecoder) Verify(_ context.Context, rawToken string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(rawToken, claims); err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, "decode")
	}
	return identityFromClaims(claims)
}

// identityFromClaims prefers the provider's user_id claim over sub.
func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return Identity{}, errors.Wrap(ErrInvalidToken, "missing subject")
	}
	email, _ := claims["email"].(string)
	return Identity{UID: uid, Email: strings.ToLower(strings.TrimSpace(email))}, nil
}
