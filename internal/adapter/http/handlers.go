package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hktools/hk-grid-service/internal/convert"
	"github.com/hktools/hk-grid-service/internal/domain"
)

const maxRequestBody = 1 << 20 // generous for bulk input

type convertRequest struct {
	Direction string `json:"direction"`
	Input     string `json:"input"`
}

type locateRequest struct {
	Input string `json:"input"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dir, err := convert.ParseDirection(req.Direction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.converter.Single(r.Context(), dir, req.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dir, err := convert.ParseDirection(req.Direction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.converter.Bulk(r.Context(), dir, req.Input))
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.converter.Locate(r.Context(), req.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{Error: convert.ErrorMessage(err)})
}

// statusForError maps the error taxonomy to HTTP statuses: parse failures
// are the client's fault, gateway failures are upstream's.
func statusForError(err error) int {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidPrefix),
		errors.Is(err, domain.ErrInvalidDigits),
		errors.Is(err, domain.ErrOddDigitCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.As(err, &remote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
