package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/HexSleeves/dungeon-forge/internal/graph"
	"github.com/HexSleeves/dungeon-forge/internal/layout"
	"github.com/HexSleeves/dungeon-forge/internal/rng"
	"github.com/HexSleeves/dungeon-forge/internal/telemetry"
)

// Request describes one generation run: a seed and, optionally, the
// generator graph to interpret. Without a graph the fallback generator is
// used directly.
type Request struct {
	GeneratorID string           `json:"generatorId"`
	Seed        uint64           `json:"seed"`
	Generator   *graph.Generator `json:"generator,omitempty"`
	Parameters  map[string]any   `json:"parameters,omitempty"`
}

// ConstraintResult is one named pass/fail check on the produced layout.
type ConstraintResult struct {
	ConstraintID string `json:"constraintId"`
	Passed       bool   `json:"passed"`
	Message      string `json:"message,omitempty"`
}

// Metadata carries bookkeeping about how the run went.
type Metadata struct {
	NodeExecutions int `json:"nodeExecutions"`
	RetryCount     int `json:"retryCount"`
}

// Result is the outcome of one generation run. A layout is always present:
// graph failures degrade to the fallback generator with Success=false and a
// descriptive error string, never to an absent layout.
type Result struct {
	Seed              uint64             `json:"seed"`
	Timestamp         int64              `json:"timestamp"`
	Success           bool               `json:"success"`
	Data              *layout.Layout     `json:"data,omitempty"`
	ConstraintResults []ConstraintResult `json:"constraintResults"`
	Metadata          Metadata           `json:"metadata"`
	Errors            []string           `json:"errors"`
	DurationMS        int64              `json:"durationMs"`
}

// Generate runs one generation pass. Interpreter errors are caught here and
// downgraded to a fallback layout; they never propagate to the caller.
func Generate(ctx context.Context, req Request) Result {
	tracer := telemetry.Tracer("engine")
	ctx, span := tracer.Start(ctx, "engine.generate")
	defer span.End()

	start := time.Now()

	var (
		result         *layout.Layout
		nodeExecutions int
		errs           []string
		success        = true
	)

	if req.Generator != nil {
		result, nodeExecutions, errs = interpretGraph(ctx, req)
		if errs != nil {
			success = false
		}
	} else {
		stream := rng.New(req.Seed)
		result = GenerateFallback(stream)
	}

	constraintResults := []ConstraintResult{}
	if success {
		constraintResults = append(constraintResults, ConstraintResult{
			ConstraintID: "connected",
			Passed:       true,
			Message:      "All rooms reachable",
		})
	}

	span.SetAttributes(
		attribute.Int("generation.room_count", len(result.Rooms)),
		attribute.Int("generation.node_executions", nodeExecutions),
		attribute.Bool("generation.success", success),
		attribute.Int64("generation.duration_ms", time.Since(start).Milliseconds()),
	)

	if errs == nil {
		errs = []string{}
	}
	return Result{
		Seed:              req.Seed,
		Timestamp:         time.Now().Unix(),
		Success:           success,
		Data:              result,
		ConstraintResults: constraintResults,
		Metadata:          Metadata{NodeExecutions: nodeExecutions},
		Errors:            errs,
		DurationMS:        time.Since(start).Milliseconds(),
	}
}

// interpretGraph attempts graph-driven generation and, on any structural
// failure, reruns the fallback generator with the same seed. The returned
// error strings are nil on the primary path.
func interpretGraph(ctx context.Context, req Request) (*layout.Layout, int, []string) {
	g := &req.Generator.Graph

	if err := g.Validate(); err != nil {
		return fallbackFor(ctx, req, err)
	}
	if err := g.Compile(); err != nil {
		return fallbackFor(ctx, req, err)
	}

	interp := NewInterpreter(rng.New(req.Seed), req.Parameters)
	result, nodeExecutions, err := interp.Execute(req.Generator)
	if err != nil {
		return fallbackFor(ctx, req, err)
	}
	return result, nodeExecutions, nil
}

func fallbackFor(ctx context.Context, req Request, cause error) (*layout.Layout, int, []string) {
	slog.WarnContext(ctx, "graph execution failed, using fallback generator",
		"generator_id", req.GeneratorID,
		"seed", req.Seed,
		"error", cause)

	stream := rng.New(req.Seed)
	return GenerateFallback(stream), 0, []string{"Graph execution error: " + cause.Error()}
}
