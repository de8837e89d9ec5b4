package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/periodize/internal/api"
	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/microcycle"
	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
	"github.com/go-chi/chi/v5"
)

// maxComparePrograms bounds one compare request.
const maxComparePrograms = 16

func (s *Server) handleAbilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Registry().Abilities())
}

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Registry().Blocks())
}

func (s *Server) handleGetBlock(w http.ResponseWriter, r *http.Request) {
	spec, err := s.engine.Registry().Block(models.BlockKind(chi.URLParam(r, "kind")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleIntervals(w http.ResponseWriter, r *http.Request) {
	program, _, ok := s.decodeProgram(w, r)
	if !ok {
		return
	}
	tl, err := s.engine.BuildTimeline(program)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.IntervalsResponse{
		Intervals:  tl.Intervals,
		TotalWeeks: tl.TotalWeeks,
		PeakWeek:   tl.PeakWeek(),
	})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	program, days, ok := s.decodeProgram(w, r)
	if !ok {
		return
	}

	result, err := s.engine.Simulate(program)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := api.SimulationResponse{ID: requestIDFromContext(r), Result: result}
	if days > 0 {
		resp.Microcycle, err = microcycle.Week(days)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req api.CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Programs) == 0 {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "programs required", Code: api.CodeInvalidRequest})
		return
	}
	if len(req.Programs) > maxComparePrograms {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("at most %d programs per comparison", maxComparePrograms),
			Code:  api.CodeInvalidRequest,
		})
		return
	}

	programs := make([][]models.BlockKind, 0, len(req.Programs))
	for _, ids := range req.Programs {
		program, err := s.engine.Registry().ParseProgram(ids)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		programs = append(programs, program)
	}

	results, err := s.engine.Compare(r.Context(), programs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CompareResponse{ID: requestIDFromContext(r), Results: results})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	program, _, ok := s.decodeProgram(w, r)
	if !ok {
		return
	}
	tasks, err := s.engine.Schedule(program)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ScheduleResponse{Tasks: tasks, Lanes: engine.Lanes(tasks)})
}

func (s *Server) handleMicrocycle(w http.ResponseWriter, r *http.Request) {
	days := microcycle.MinDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "days must be an integer", Code: api.CodeInvalidRequest})
			return
		}
		days = n
	}
	sessions, err := microcycle.Week(days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// decodeProgram reads a ProgramRequest and resolves its block kinds. On
// failure it has already written the response.
func (s *Server) decodeProgram(w http.ResponseWriter, r *http.Request) ([]models.BlockKind, int, bool) {
	var req api.ProgramRequest
	if !decodeBody(w, r, &req) {
		return nil, 0, false
	}
	program, err := s.engine.Registry().ParseProgram(req.Blocks)
	if err != nil {
		s.writeError(w, r, err)
		return nil, 0, false
	}
	return program, req.TrainingDaysPerWeek, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, api.ErrorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
				Code:  api.CodeBodyTooLarge,
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON: " + err.Error(), Code: api.CodeInvalidRequest})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a server fault.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *registry.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		status := http.StatusBadRequest
		if r.Method == http.MethodGet && chi.URLParam(r, "kind") != "" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, api.ErrorResponse{
			Error:      err.Error(),
			Code:       api.CodeUnknownIdentifier,
			Identifier: cfgErr.Identifier,
		})
	case errors.Is(err, engine.ErrProgramTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: err.Error(), Code: api.CodeProgramTooLarge})
	case errors.Is(err, microcycle.ErrInvalidTrainingDays):
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: api.CodeInvalidTrainingDays})
	default:
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
