package server

import (
	"net/http"
	"strings"

	"expedientes/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type usuarioForm struct {
	Nombre   string `json:"nombre" form:"nombre"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Rol      string `json:"rol" form:"rol"`
}

func (s *Service) handleListUsuarios(w http.ResponseWriter, r *http.Request) {

	usuarios, err := s.usuarios.Usuarios(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to list usuarios")
		return
	}

	s.respondOK(w, map[string]any{"usuarios": usuarios})
}

func (s *Service) handleCreateUsuario(w http.ResponseWriter, r *http.Request) {

	var form usuarioForm
	if err := decodeRequest(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	form.Nombre = strings.TrimSpace(form.Nombre)
	form.Email = strings.TrimSpace(form.Email)
	form.Rol = strings.TrimSpace(form.Rol)

	if form.Nombre == "" || form.Email == "" || form.Password == "" {
		s.respondError(w, http.StatusBadRequest, "Faltan campos: nombre, email y password son obligatorios")
		return
	}

	if form.Rol == "" {
		form.Rol = types.RolUsuario
	}

	switch form.Rol {
	case types.RolAdmin, types.RolAbogado, types.RolUsuario:
	default:
		s.respondError(w, http.StatusBadRequest, "Rol inválido")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.respondError(w, http.StatusInternalServerError, "Error en servidor")
		return
	}

	usuario := &types.Usuario{
		Nombre:   form.Nombre,
		Email:    form.Email,
		Password: string(hashed),
		Rol:      form.Rol,
	}

	if err := s.usuarios.CreateUsuario(r.Context(), usuario); err != nil {
		s.respondRepoError(w, err, "failed to create usuario")
		return
	}

	s.respondOK(w, map[string]any{"usuario": usuario})
}
