package fill

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pixil98/go-multifill/internal/multiworld"
)

// Corrector repairs a finished fill pass so that no advancement item sits in
// a location its owner's accessibility policy allows to be unreachable.
type Corrector struct {
	world     CorrectionWorld
	maxPasses int
}

type CorrectorOpt func(*Corrector)

// WithMaxPasses caps the number of correction passes. The default is one more
// than the number of filled locations belonging to affected players.
func WithMaxPasses(n int) CorrectorOpt {
	return func(c *Corrector) {
		c.maxPasses = n
	}
}

func NewCorrector(world CorrectionWorld, opts ...CorrectorOpt) *Corrector {
	c := &Corrector{world: world}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Correct unplaces every advancement item that sits in an unreachable
// location of a player whose accessibility is not full and who cannot yet
// beat their game. Freed items are appended to pool and freed locations to
// unfilled. state is swept before the first pass and after each removal.
// It returns the number of items freed.
func (c *Corrector) Correct(ctx context.Context, state *multiworld.State, unfilled *[]*multiworld.Location, pool *multiworld.Pool) (int, error) {
	players := c.players()
	if len(players) == 0 {
		return 0, nil
	}

	limit := c.maxPasses
	if limit <= 0 {
		for _, p := range players {
			limit += len(c.world.FilledLocations(p))
		}
		limit++
	}

	state.Sweep()

	freed := 0
	var last *multiworld.Item
	for pass := 0; ; pass++ {
		if pass >= limit {
			return freed, c.exhausted(last)
		}

		moved, item := c.pass(ctx, players, state, unfilled, pool)
		if moved == 0 {
			return freed, nil
		}
		freed += moved
		last = item
	}
}

func (c *Corrector) pass(ctx context.Context, players []multiworld.PlayerID, state *multiworld.State, unfilled *[]*multiworld.Location, pool *multiworld.Pool) (int, *multiworld.Item) {
	moved := 0
	var last *multiworld.Item

	for _, p := range players {
		if c.world.HasBeatenGame(state, p) {
			continue
		}

		for _, loc := range c.world.FilledLocations(p) {
			item := loc.Item()
			if item == nil || !item.Advancement || loc.Locked {
				continue
			}
			if loc.CanReach(state) {
				continue
			}

			c.world.Unplace(loc)
			state.Forget(loc, item)
			pool.Add(item)
			if !slices.Contains(*unfilled, loc) {
				*unfilled = append(*unfilled, loc)
			}
			state.Sweep()

			slog.DebugContext(ctx, "unplaced unreachable advancement",
				"player", c.world.PlayerName(p), "location", loc.Name, "item", item.Name)
			moved++
			last = item
		}
	}

	return moved, last
}

// players returns the players subject to correction in world order.
func (c *Corrector) players() []multiworld.PlayerID {
	var ids []multiworld.PlayerID
	for _, id := range c.world.PlayerIDs() {
		if c.world.Accessibility(id) != multiworld.AccessibilityFull {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Corrector) exhausted(item *multiworld.Item) error {
	fe := &FillError{Reason: "accessibility correction did not converge"}
	if item != nil {
		fe.Player = item.Player
		fe.PlayerName = c.world.PlayerName(item.Player)
		fe.Item = item.Name
	}
	return fe
}
