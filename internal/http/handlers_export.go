package http

import "net/http"

func (s *Server) handleExportBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	var req exportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	res, err := s.exports.ExportBill(r.Context(), id, req.Format)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Queued {
		status = http.StatusAccepted
	}
	writeJSON(w, status, res)
}

func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	var req exportSummaryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	start, err := parseYearMonth(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start")
		return
	}
	end, err := parseYearMonth(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end")
		return
	}

	res, err := s.exports.ExportSummary(r.Context(), start, end, req.Format)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Queued {
		status = http.StatusAccepted
	}
	writeJSON(w, status, res)
}
