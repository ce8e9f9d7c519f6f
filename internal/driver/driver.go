package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength  = time.Second * 2
	DefaultMaxFailures = 5
)

// Manager is anything with periodic work to do.
type Manager interface {
	Tick(context.Context) error
}

type namedManager struct {
	name string
	Manager
}

// Driver ticks every registered manager on a fixed interval until the
// context ends. A failed tick is logged and retried on the next interval;
// the driver stops once maxFailures ticks in a row have failed.
type Driver struct {
	tickLength  time.Duration
	maxFailures int
	managers    []namedManager
}

func NewDriver(opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength:  DefaultTickLength,
		maxFailures: DefaultMaxFailures,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err == nil {
				failures = 0
				continue
			}

			failures++
			slog.ErrorContext(ctx, "tick failed", "failures", failures, "error", err)
			if d.maxFailures > 0 && failures >= d.maxFailures {
				return fmt.Errorf("%d consecutive ticks failed: %w", failures, err)
			}
		}
	}
}

// Tick runs every manager once, in registration order. One manager failing
// does not stop the others.
func (d *Driver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			el.Add(fmt.Errorf("%s: %w", m.name, err))
		}
	}
	return el.Err()
}
