package server

import "net/http"

// handleDashboard bundles the aggregates the landing page renders into one
// response so the frontend needs a single round trip.
func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	total, err := s.dashboard.Total(ctx)
	if err != nil {
		s.respondRepoError(w, err, "failed to compute total")
		return
	}

	porEstado, err := s.dashboard.PorEstado(ctx)
	if err != nil {
		s.respondRepoError(w, err, "failed to compute estado counts")
		return
	}

	porUsuario, err := s.dashboard.PorUsuario(ctx)
	if err != nil {
		s.respondRepoError(w, err, "failed to compute usuario counts")
		return
	}

	s.respondOK(w, map[string]any{
		"indicadores": map[string]any{"total": total},
		"porEstado":   porEstado,
		"porUsuario":  porUsuario,
	})
}

func (s *Service) handleDashboardEstado(w http.ResponseWriter, r *http.Request) {

	conteos, err := s.dashboard.PorEstado(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to compute estado counts")
		return
	}

	s.respondOK(w, map[string]any{"porEstado": conteos})
}

func (s *Service) handleDashboardUsuario(w http.ResponseWriter, r *http.Request) {

	conteos, err := s.dashboard.PorUsuario(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to compute usuario counts")
		return
	}

	s.respondOK(w, map[string]any{"porUsuario": conteos})
}

func (s *Service) handleDashboardMes(w http.ResponseWriter, r *http.Request) {

	conteos, err := s.dashboard.PorMes(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to compute monthly counts")
		return
	}

	s.respondOK(w, map[string]any{"porMes": conteos})
}

func (s *Service) handleDashboardResumen(w http.ResponseWriter, r *http.Request) {

	resumen, err := s.dashboard.Resumen(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to compute resumen")
		return
	}

	s.respondOK(w, map[string]any{"resumen": resumen})
}

func (s *Service) handleDashboardAbiertosCerrados(w http.ResponseWriter, r *http.Request) {

	resumen, err := s.dashboard.Resumen(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "failed to compute abiertos/cerrados")
		return
	}

	s.respondOK(w, map[string]any{
		"abiertos": resumen.Total - resumen.Cerrados,
		"cerrados": resumen.Cerrados,
	})
}
