package http

import (
	"encoding/json"
	"net/http"

	"gastos/internal/store"
)

// profileStore reports the optional profile capability of the configured
// backend. Only the sqlite store implements it.
func (s *Server) profileStore() (store.ProfileStore, bool) {
	ps, ok := s.store.(store.ProfileStore)
	return ps, ok
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.profileStore()
	if !ok {
		writeError(w, http.StatusNotImplemented, "profiles are not supported by this backend")
		return
	}

	profile, err := ps.GetProfile(r.Context(), userIDFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.profileStore()
	if !ok {
		writeError(w, http.StatusNotImplemented, "profiles are not supported by this backend")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := ps.UpsertProfile(r.Context(), store.Profile{
		UserID: userIDFromQuery(r),
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
