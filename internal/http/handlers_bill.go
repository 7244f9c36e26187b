package http

import (
	"net/http"

	"warikan/internal/core"
)

func (s *Server) handleCalculateBill(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	parts := make([]core.Participation, len(req.Families))
	for i, p := range req.Families {
		parts[i] = p.toCore()
	}

	// Lenient amount parsing: whatever does not parse counts as zero.
	total := core.ParseAmount(req.TotalCost)

	bill := s.bills.Calculate(r.Context(), req.BillMonth, total, parts)
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if bills == nil {
		bills = []core.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleSaveBill(w http.ResponseWriter, r *http.Request) {
	var bill core.Bill
	if !s.decodeJSON(w, r, &bill) {
		return
	}

	saved, err := s.bills.Save(r.Context(), bill)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.summaryCache.Clear()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	bill, err := s.bills.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	if err := s.bills.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.summaryCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// Batch totals parse strictly; a blank or garbled amount is a
	// validation failure, not a zero.
	total, err := core.ParseDecimal(req.TotalCost)
	if err != nil {
		writeDomainError(w, r, &core.ValidationError{Field: "totalCost", Err: core.ErrMissingTotal})
		return
	}

	start, err := parseYearMonth(req.StartMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startMonth")
		return
	}
	end, err := parseYearMonth(req.EndMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endMonth")
		return
	}

	batch, err := s.bills.GenerateBatch(r.Context(), req.FamilyIDs, req.FixedExtras, total, start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.summaryCache.Clear()
	writeJSON(w, http.StatusCreated, batch)
}
