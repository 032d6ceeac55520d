package seed

import (
	"context"
	"errors"
	"fmt"

	"expedientes/internal/store"
	"expedientes/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account. It is a no-op when a user
// with the given email already exists, so re-running the seed is safe.
func SeedAdmin(ctx context.Context, repo *store.UsuarioRepository, nombre, email, password string) error {

	_, err := repo.UsuarioByEmail(ctx, email)
	if err == nil {
		return nil
	}

	if !errors.Is(err, types.ErrUsuarioNotFound) {
		return fmt.Errorf("check existing admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	usuario := &types.Usuario{
		Nombre:   nombre,
		Email:    email,
		Password: string(hashed),
		Rol:      types.RolAdmin,
	}

	if err := repo.CreateUsuario(ctx, usuario); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	return nil
}
