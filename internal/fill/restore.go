package fill

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pixil98/go-multifill/internal/multiworld"
)

// Restore places the items in pool into the locations listed in unfilled.
// Advancement items go first, each into the first priority location (then
// any other location) that can hold it while every other pooled advancement
// item is assumed collected. Placed locations are removed from unfilled.
// An advancement item with no such location yields a *FillError; other items
// that do not fit stay in the pool.
func (c *Corrector) Restore(ctx context.Context, state *multiworld.State, unfilled *[]*multiworld.Location, pool *multiworld.Pool) error {
	slices.SortStableFunc(*unfilled, func(a, b *multiworld.Location) int {
		return priorityRank(a) - priorityRank(b)
	})

	items := pool.Items()
	slices.SortStableFunc(items, func(a, b *multiworld.Item) int {
		return advancementRank(a) - advancementRank(b)
	})

	for _, item := range items {
		var loc *multiworld.Location
		if item.Advancement {
			assumed := assumedState(state, pool, item)
			loc = firstFillable(*unfilled, func(l *multiworld.Location) bool {
				return l.CanFill(assumed, item)
			})
			if loc == nil {
				name := c.world.PlayerName(item.Player)
				return &FillError{
					Player:     item.Player,
					PlayerName: name,
					Item:       item.Name,
					Reason: renderMessage(msgUnreachable, messageData{
						Item:   item.Name,
						Player: name,
						Detail: fmt.Sprintf("%d candidate locations", len(*unfilled)),
					}),
				}
			}
		} else {
			loc = firstFillable(*unfilled, func(l *multiworld.Location) bool {
				return !l.Filled() && !l.Locked
			})
			if loc == nil {
				continue
			}
		}

		if err := c.world.Place(loc, item); err != nil {
			return fmt.Errorf("restoring %s: %w", item, err)
		}
		pool.Remove(item)
		*unfilled = slices.DeleteFunc(*unfilled, func(l *multiworld.Location) bool { return l == loc })
		state.Sweep()

		slog.DebugContext(ctx, "restored item",
			"player", c.world.PlayerName(item.Player), "location", loc.Name, "item", item.Name)
	}

	return nil
}

// assumedState is state plus every pooled advancement item other than skip.
func assumedState(state *multiworld.State, pool *multiworld.Pool, skip *multiworld.Item) *multiworld.State {
	assumed := state.Copy()
	for _, it := range pool.Items() {
		if it != skip && it.Advancement {
			assumed.Collect(it)
		}
	}
	assumed.Sweep()
	return assumed
}

func firstFillable(locs []*multiworld.Location, ok func(*multiworld.Location) bool) *multiworld.Location {
	for _, l := range locs {
		if ok(l) {
			return l
		}
	}
	return nil
}

func priorityRank(l *multiworld.Location) int {
	if l.ProgressType == multiworld.ProgressPriority {
		return 0
	}
	return 1
}

func advancementRank(i *multiworld.Item) int {
	if i.Advancement {
		return 0
	}
	return 1
}
