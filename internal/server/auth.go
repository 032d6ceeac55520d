package server

import (
	"errors"
	"net/http"
	"strings"

	"expedientes/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := decodeRequest(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Email y password requeridos")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "Email y password requeridos")
		return
	}

	usuario, err := s.usuarios.UsuarioByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, types.ErrUsuarioNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		s.respondRepoError(w, err, "failed to fetch usuario for login")
		return
	}

	matched, legacy := passwordMatches(usuario.Password, req.Password)
	if !matched {
		s.respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	// Legacy plaintext rows are upgraded in place on their next good
	// login. Failure here never blocks the login itself.
	if legacy {
		if hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost); err == nil {
			if err := s.usuarios.UpdatePassword(r.Context(), usuario.ID, string(hashed)); err != nil {
				s.logger.WithError(err).WithField("usuario_id", usuario.ID).Warn("failed to upgrade legacy password")
			}
		}
	}

	token, err := s.issueToken(usuario)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		s.respondError(w, http.StatusInternalServerError, "Error en servidor")
		return
	}

	s.respondOK(w, map[string]any{
		"user": Identity{
			ID:     usuario.ID,
			Nombre: usuario.Nombre,
			Email:  usuario.Email,
			Rol:    usuario.Rol,
		},
		"token": token,
	})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	s.respondOK(w, map[string]any{"user": identityFromContext(r.Context())})
}

// passwordMatches compares the submitted password against the stored
// credential. A "$2" prefix marks a bcrypt hash; anything else is a legacy
// plaintext row, reported via the second return so callers can upgrade it.
func passwordMatches(stored, submitted string) (matched bool, legacy bool) {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil, false
	}

	return stored != "" && stored == submitted, true
}
