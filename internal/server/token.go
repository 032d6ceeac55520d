package server

import (
	"fmt"
	"time"

	"expedientes/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Identity is the token payload attached to authenticated requests.
type Identity struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

func (s *Service) issueToken(usuario *types.Usuario) (string, error) {

	now := time.Now()
	ttl := time.Duration(s.config.TokenTTLMin) * time.Minute

	token, err := jwt.NewBuilder().
		Claim("id", usuario.ID).
		Claim("nombre", usuario.Nombre).
		Claim("email", usuario.Email).
		Claim("rol", usuario.Rol).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), []byte(s.config.JWTSecret)))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (s *Service) parseToken(raw string) (*Identity, error) {

	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), []byte(s.config.JWTSecret)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	// Private claims round-trip through JSON, so numbers come back as
	// float64.
	var id float64
	if err := token.Get("id", &id); err != nil {
		return nil, fmt.Errorf("token missing id claim: %w", err)
	}

	identity := &Identity{ID: int64(id)}

	if err := token.Get("email", &identity.Email); err != nil {
		return nil, fmt.Errorf("token missing email claim: %w", err)
	}

	if err := token.Get("rol", &identity.Rol); err != nil {
		return nil, fmt.Errorf("token missing rol claim: %w", err)
	}

	// nombre is informational only
	_ = token.Get("nombre", &identity.Nombre)

	return identity, nil
}
