package http

import (
	"net/http"

	"warikan/internal/core"
)

func (s *Server) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := s.families.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if families == nil {
		families = []core.Family{}
	}
	writeJSON(w, http.StatusOK, families)
}

func (s *Server) handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	var req familyPayload
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.families.Create(r.Context(), req.toCore())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateFamily(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}

	var req familyPayload
	if !s.decodeJSON(w, r, &req) {
		return
	}
	family := req.toCore()
	family.ID = id

	if err := s.families.Update(r.Context(), family); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func (s *Server) handleDeleteFamily(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}

	if err := s.families.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
