package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"warikan/internal/core"
	"warikan/internal/services"
)

// yearMonthLayout is the query/body month format, e.g. "2024-03". The
// Japanese bill month token stays internal to the domain.
const yearMonthLayout = "2006-01"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(yearMonthLayout, fl.Field().String())
		return err == nil
	})
	return v
}

func parseYearMonth(s string) (time.Time, error) {
	return time.Parse(yearMonthLayout, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "component", "http", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON decodes the body into v and runs struct validation when v has
// validate tags.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error: "validation failed on " + verrs[0].Tag(),
				Field: verrs[0].Field(),
			})
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// writeDomainError maps domain failures onto HTTP statuses: missing records
// to 404, validation failures to 422, everything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.Is(err, services.ErrFamilyNotFound), errors.Is(err, services.ErrBillNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: verr.Err.Error(),
			Field: verr.Field,
		})
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrNegativeLines),
		errors.Is(err, core.ErrNegativeCost),
		errors.Is(err, core.ErrBadBillMonth),
		errors.Is(err, core.ErrNoParticipants):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"component", "http",
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
