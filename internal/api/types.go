// Package api defines the JSON bodies exchanged with the REST API. The server
// encodes them and the remote client decodes them.
package api

import (
	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
)

// ProgramRequest carries an ordered list of block kinds.
type ProgramRequest struct {
	Blocks              []string `json:"blocks"`
	TrainingDaysPerWeek int      `json:"training_days_per_week,omitempty"`
}

// CompareRequest carries several candidate programs.
type CompareRequest struct {
	Programs [][]string `json:"programs"`
}

// SimulationResponse is one simulation with its request-scoped ID.
type SimulationResponse struct {
	ID string `json:"id"`
	*engine.Result
	Microcycle []models.DaySession `json:"microcycle,omitempty"`
}

// CompareResponse holds simulations in request order.
type CompareResponse struct {
	ID      string           `json:"id"`
	Results []*engine.Result `json:"results"`
}

// IntervalsResponse is the week frame of a program.
type IntervalsResponse struct {
	Intervals  []models.BlockInterval `json:"intervals"`
	TotalWeeks int                    `json:"total_weeks"`
	PeakWeek   int                    `json:"peak_week"`
}

// ScheduleResponse is the Gantt layout of a program.
type ScheduleResponse struct {
	Tasks []models.ScheduledTask `json:"tasks"`
	Lanes []string               `json:"lanes"`
}

// RegistryResponse lists the closed sets of abilities and block kinds.
type RegistryResponse struct {
	Abilities []registry.AbilitySpec `json:"abilities"`
	Blocks    []registry.BlockSpec   `json:"blocks"`
}

// Error codes carried in ErrorResponse.Code for rejected input.
const (
	CodeUnknownIdentifier   = "unknown_identifier"
	CodeProgramTooLarge     = "program_too_large"
	CodeInvalidTrainingDays = "invalid_training_days"
	CodeBodyTooLarge        = "body_too_large"
	CodeInvalidRequest      = "invalid_request"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}
