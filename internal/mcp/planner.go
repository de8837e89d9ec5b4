package mcp

import (
	"context"

	"github.com/claude/periodize/internal/api"
	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/microcycle"
	"github.com/claude/periodize/internal/models"
	"github.com/google/uuid"
)

// Planner abstracts the simulation backend for MCP tools. Both Local (in
// process) and HTTPClient (remote via REST API) satisfy this interface.
type Planner interface {
	Simulate(ctx context.Context, blocks []string, trainingDays int) (*api.SimulationResponse, error)
	Compare(ctx context.Context, programs [][]string) (*api.CompareResponse, error)
	Schedule(ctx context.Context, blocks []string) (*api.ScheduleResponse, error)
	Registry(ctx context.Context) (*api.RegistryResponse, error)
	Microcycle(ctx context.Context, trainingDays int) ([]models.DaySession, error)
}

// Local runs simulations against an in-process engine.
type Local struct {
	eng *engine.Engine
}

// Compile-time check: *Local satisfies Planner.
var _ Planner = (*Local)(nil)

// NewLocal wraps eng as a Planner.
func NewLocal(eng *engine.Engine) *Local {
	return &Local{eng: eng}
}

func (l *Local) Simulate(_ context.Context, blocks []string, trainingDays int) (*api.SimulationResponse, error) {
	program, err := l.eng.Registry().ParseProgram(blocks)
	if err != nil {
		return nil, err
	}
	result, err := l.eng.Simulate(program)
	if err != nil {
		return nil, err
	}
	resp := &api.SimulationResponse{ID: uuid.NewString(), Result: result}
	if trainingDays > 0 {
		if resp.Microcycle, err = microcycle.Week(trainingDays); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (l *Local) Compare(ctx context.Context, programs [][]string) (*api.CompareResponse, error) {
	parsed := make([][]models.BlockKind, 0, len(programs))
	for _, blocks := range programs {
		program, err := l.eng.Registry().ParseProgram(blocks)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, program)
	}
	results, err := l.eng.Compare(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return &api.CompareResponse{ID: uuid.NewString(), Results: results}, nil
}

func (l *Local) Schedule(_ context.Context, blocks []string) (*api.ScheduleResponse, error) {
	program, err := l.eng.Registry().ParseProgram(blocks)
	if err != nil {
		return nil, err
	}
	tasks, err := l.eng.Schedule(program)
	if err != nil {
		return nil, err
	}
	return &api.ScheduleResponse{Tasks: tasks, Lanes: engine.Lanes(tasks)}, nil
}

func (l *Local) Registry(_ context.Context) (*api.RegistryResponse, error) {
	reg := l.eng.Registry()
	return &api.RegistryResponse{Abilities: reg.Abilities(), Blocks: reg.Blocks()}, nil
}

func (l *Local) Microcycle(_ context.Context, trainingDays int) ([]models.DaySession, error) {
	return microcycle.Week(trainingDays)
}
