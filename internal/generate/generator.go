package generate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/pixil98/go-multifill/internal/fill"
	"github.com/pixil98/go-multifill/internal/multiworld"
	"github.com/pixil98/go-multifill/internal/seed"
	"github.com/pixil98/go-multifill/internal/storage"
)

const DefaultMaxRounds = 16

// Generator turns a seed spec into a result. A Generator holds no per-run
// state and may be shared by concurrent runs.
type Generator struct {
	optionsDir string
	maxRounds  int
}

type GeneratorOpt func(*Generator)

// WithOptionsDir sets the directory relative player options files resolve against.
func WithOptionsDir(dir string) GeneratorOpt {
	return func(g *Generator) {
		g.optionsDir = dir
	}
}

// WithMaxRounds caps the correct/restore rounds per run.
func WithMaxRounds(n int) GeneratorOpt {
	return func(g *Generator) {
		g.maxRounds = n
	}
}

func NewGenerator(opts ...GeneratorOpt) *Generator {
	g := &Generator{maxRounds: DefaultMaxRounds}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate builds the multiworld, applies planned directives, then alternates
// accessibility correction and restoration until no correction is needed.
// Any error aborts the run; no partial result is returned.
func (g *Generator) Generate(ctx context.Context, id string, spec *seed.Spec) (*seed.Result, error) {
	runID := uuid.New().String()
	logger := slog.With("seed", id, "run", runID)

	w, directives, err := spec.Build(g.optionsDir)
	if err != nil {
		return nil, fmt.Errorf("building multiworld: %w", err)
	}

	report, err := fill.DistributePlanned(ctx, w, directives)
	if err != nil {
		return nil, fmt.Errorf("distributing planned items: %w", err)
	}

	freed, err := g.correct(ctx, w)
	if err != nil {
		return nil, err
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating multiworld: %w", err)
	}

	slotData := map[multiworld.PlayerID]storage.SlotData{}
	for _, ps := range spec.Players {
		pid := multiworld.PlayerID(ps.ID)
		data := ps.SlotData.Clone()
		if err := data.Set("corrections", freed[pid]); err != nil {
			return nil, err
		}
		slotData[pid] = data
	}

	total := 0
	for _, n := range freed {
		total += n
	}

	res := &seed.Result{
		RunID:    runID,
		Seed:     id,
		Status:   seed.StatusGenerated,
		Freed:    total,
		Warnings: report.Warnings,
	}
	res.Snapshot(w, slotData)

	logger.InfoContext(ctx, "seed generated",
		"players", len(res.Players), "placed", len(res.Placed), "corrections", total, "warnings", len(res.Warnings))

	return res, nil
}

// correct runs correction rounds and returns how many items were freed per
// item owner.
func (g *Generator) correct(ctx context.Context, w *multiworld.MultiWorld) (map[multiworld.PlayerID]int, error) {
	c := fill.NewCorrector(w)
	state := multiworld.NewState(w)
	state.Sweep()

	unfilled := w.UnfilledLocations()
	freed := map[multiworld.PlayerID]int{}
	var last *multiworld.Item

	for round := 0; round < g.maxRounds; round++ {
		before := w.Pool().Items()

		n, err := c.Correct(ctx, state, &unfilled, w.Pool())
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return freed, nil
		}

		for _, it := range w.Pool().Items() {
			if !slices.Contains(before, it) {
				freed[it.Player]++
				last = it
			}
		}

		if err := c.Restore(ctx, state, &unfilled, w.Pool()); err != nil {
			return nil, err
		}
	}

	fe := &fill.FillError{Reason: fmt.Sprintf("accessibility correction did not settle after %d rounds", g.maxRounds)}
	if last != nil {
		fe.Player = last.Player
		fe.PlayerName = w.PlayerName(last.Player)
		fe.Item = last.Name
	}
	return nil, fe
}
