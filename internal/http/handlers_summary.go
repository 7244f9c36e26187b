package http

import (
	"net/http"

	"warikan/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	start, err := parseYearMonth(startParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing start (expected YYYY-MM)")
		return
	}
	end, err := parseYearMonth(endParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing end (expected YYYY-MM)")
		return
	}

	key := startParam + "|" + endParam
	if entries, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := s.summaries.Aggregate(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.SummaryEntry{}
	}

	s.summaryCache.Set(key, entries)
	writeJSON(w, http.StatusOK, entries)
}
