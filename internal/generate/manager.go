package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-multifill/internal/fill"
	"github.com/pixil98/go-multifill/internal/seed"
	"github.com/pixil98/go-multifill/internal/spoiler"
	"github.com/pixil98/go-multifill/internal/storage"
)

const DefaultWorkers = 4

// SeedStore is the source of seeds waiting to be generated. Invalid reports
// seed files the last Reload had to skip.
type SeedStore interface {
	storage.Storer[*seed.Spec]
	Reload() error
	Invalid() map[string]error
}

// Publisher delivers generation events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is published once per generated seed.
type Event struct {
	Seed     string      `json:"seed"`
	RunID    string      `json:"run_id"`
	Status   seed.Status `json:"status"`
	Cause    seed.Cause  `json:"cause,omitempty"`
	Freed    int         `json:"freed"`
	Warnings int         `json:"warnings"`
	Error    string      `json:"error,omitempty"`
}

// Manager generates every seed that does not have a result yet.
type Manager struct {
	seeds      SeedStore
	results    storage.Storer[*seed.Result]
	generator  *Generator
	publisher  Publisher
	spoilerDir string
	workers    int
}

type ManagerOpt func(*Manager)

// WithPublisher publishes an Event for every finished seed.
func WithPublisher(p Publisher) ManagerOpt {
	return func(m *Manager) {
		m.publisher = p
	}
}

// WithSpoilerDir writes a <seed>.txt spoiler log for every finished seed.
func WithSpoilerDir(dir string) ManagerOpt {
	return func(m *Manager) {
		m.spoilerDir = dir
	}
}

// WithWorkers sets how many seeds may generate at once.
func WithWorkers(n int) ManagerOpt {
	return func(m *Manager) {
		m.workers = n
	}
}

func NewManager(seeds SeedStore, results storage.Storer[*seed.Result], gen *Generator, opts ...ManagerOpt) *Manager {
	m := &Manager{
		seeds:     seeds,
		results:   results,
		generator: gen,
		workers:   DefaultWorkers,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.workers < 1 {
		m.workers = 1
	}

	return m
}

// Tick picks up new seed files and generates every pending seed. Seeds run
// concurrently; each builds its own multiworld. A seed that fails to load or
// generate is recorded as a failed result so it is not retried.
func (m *Manager) Tick(ctx context.Context) error {
	if err := m.seeds.Reload(); err != nil {
		return fmt.Errorf("reloading seeds: %w", err)
	}

	el := errors.NewErrorList()
	el.Add(m.rejectInvalid(ctx))

	pending := m.pending()
	if len(pending) == 0 {
		return el.Err()
	}
	slog.InfoContext(ctx, "generating seeds", "count", len(pending))

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, m.workers)
	)

	for _, id := range pending {
		spec := m.seeds.Get(id)

		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := m.run(ctx, id, spec)
			if err != nil {
				mu.Lock()
				el.Add(fmt.Errorf("seed %s: %w", id, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return el.Err()
}

// rejectInvalid records a failed result for every seed file that could not be
// loaded and has no result yet.
func (m *Manager) rejectInvalid(ctx context.Context) error {
	invalid := m.seeds.Invalid()
	if len(invalid) == 0 {
		return nil
	}

	ids := slices.Sorted(maps.Keys(invalid))
	el := errors.NewErrorList()
	for _, id := range ids {
		if m.results.Get(id) != nil || m.seeds.Get(id) != nil {
			continue
		}
		if err := storage.Identifier(id).Validate(); err != nil {
			slog.WarnContext(ctx, "cannot record result for seed file", "seed", id, "error", err)
			continue
		}

		slog.ErrorContext(ctx, "seed file rejected", "seed", id, "error", invalid[id])
		if err := m.record(ctx, failedResult(id, seed.CauseInvalid, invalid[id])); err != nil {
			el.Add(fmt.Errorf("seed %s: %w", id, err))
		}
	}

	return el.Err()
}

func (m *Manager) pending() []string {
	results := m.results.GetAll()

	var ids []string
	for id := range m.seeds.GetAll() {
		if _, done := results[id]; !done {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// run generates one seed and records its result. Only storage failures are
// returned; generation failures become failed results.
func (m *Manager) run(ctx context.Context, id string, spec *seed.Spec) error {
	res, err := m.generator.Generate(ctx, id, spec)
	if err != nil {
		cause := causeOf(err)
		if cause == seed.CausePlanned {
			slog.WarnContext(ctx, "seed rejected by planned directive", "seed", id, "error", err)
		} else {
			slog.ErrorContext(ctx, "seed generation failed", "seed", id, "cause", cause, "error", err)
		}
		res = failedResult(id, cause, err)
	}

	return m.record(ctx, res)
}

func (m *Manager) record(ctx context.Context, res *seed.Result) error {
	if err := m.results.Save(res.Seed, res); err != nil {
		return fmt.Errorf("saving result: %w", err)
	}

	if m.spoilerDir != "" {
		path := filepath.Join(m.spoilerDir, fmt.Sprintf("%s.txt", res.Seed))
		if err := storage.WriteFileAtomic(path, []byte(spoiler.Render(res)), 0644); err != nil {
			return fmt.Errorf("writing spoiler: %w", err)
		}
	}

	m.publish(ctx, res)
	return nil
}

func failedResult(id string, cause seed.Cause, err error) *seed.Result {
	return &seed.Result{
		RunID:  uuid.New().String(),
		Seed:   id,
		Status: seed.StatusFailed,
		Cause:  cause,
		Error:  err.Error(),
	}
}

func causeOf(err error) seed.Cause {
	switch {
	case fill.IsPlannedError(err):
		return seed.CausePlanned
	case fill.IsStructural(err):
		return seed.CauseStructural
	default:
		return seed.CauseBuild
	}
}

func (m *Manager) publish(ctx context.Context, res *seed.Result) {
	if m.publisher == nil {
		return
	}

	data, err := json.Marshal(Event{
		Seed:     res.Seed,
		RunID:    res.RunID,
		Status:   res.Status,
		Cause:    res.Cause,
		Freed:    res.Freed,
		Warnings: len(res.Warnings),
		Error:    res.Error,
	})
	if err != nil {
		slog.WarnContext(ctx, "marshalling seed event", "seed", res.Seed, "error", err)
		return
	}

	if err := m.publisher.Publish(Subject(res.Seed), data); err != nil {
		slog.WarnContext(ctx, "publishing seed event", "seed", res.Seed, "error", err)
	}
}

// Subject is the bus subject events for seed id are published on.
func Subject(id string) string {
	return fmt.Sprintf("multifill.seed.%s", id)
}
