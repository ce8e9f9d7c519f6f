package fill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-multifill/internal/multiworld"
)

// ForcePolicy decides what happens when a planned directive cannot be honored.
type ForcePolicy int

const (
	// ForceNone ignores the failure.
	ForceNone ForcePolicy = iota
	// ForceWarn logs and reports the failure, then continues.
	ForceWarn
	// ForceStrict aborts generation.
	ForceStrict
)

func (f ForcePolicy) String() string {
	switch f {
	case ForceNone:
		return "none"
	case ForceWarn:
		return "warn"
	case ForceStrict:
		return "strict"
	default:
		return fmt.Sprintf("force(%d)", int(f))
	}
}

// ParseForcePolicy accepts none/silent, warn/false and strict/true.
// An empty string is ForceNone.
func ParseForcePolicy(s string) (ForcePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "silent":
		return ForceNone, nil
	case "warn", "false":
		return ForceWarn, nil
	case "strict", "true":
		return ForceStrict, nil
	default:
		return ForceNone, fmt.Errorf("unknown force policy %q", s)
	}
}

func (f ForcePolicy) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *ForcePolicy) UnmarshalText(text []byte) error {
	v, err := ParseForcePolicy(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Directive pins items owned by Player to locations before the general fill.
// Items are paired with the first free location in Locations order.
type Directive struct {
	Player    multiworld.PlayerID
	Items     []string
	Locations []string

	// World owns the target locations. Zero means Player's own world.
	World multiworld.PlayerID

	// FromPool takes the item out of the shared pool instead of creating it.
	FromPool bool
	Force    ForcePolicy
}

func (d Directive) target() multiworld.PlayerID {
	if d.World == 0 {
		return d.Player
	}
	return d.World
}

// PlanReport summarises a DistributePlanned run.
type PlanReport struct {
	Placed   []*multiworld.Location
	Warnings []string
}

// DistributePlanned applies directives in order. Failures are handled by each
// directive's force policy: ignored, reported as a warning, or returned as a
// *PlannedError that aborts the run. Placed locations are locked.
func DistributePlanned(ctx context.Context, world PlannedWorld, directives []Directive) (*PlanReport, error) {
	report := &PlanReport{}

	for i, d := range directives {
		err := distributeDirective(ctx, world, d, report)
		if err != nil {
			return report, fmt.Errorf("planned directive %d for %s: %w", i, world.PlayerName(d.Player), err)
		}
	}

	return report, nil
}

func distributeDirective(ctx context.Context, world PlannedWorld, d Directive, report *PlanReport) error {
	playerName := world.PlayerName(d.Player)
	target := d.target()

	var candidates []*multiworld.Location
	for _, name := range d.Locations {
		loc := world.Location(target, name)
		if loc == nil {
			err := fail(ctx, d.Force, report, ErrPlannedLocation, d, "", name, msgUnknownLocation, messageData{
				Location: name,
				Target:   world.PlayerName(target),
				Player:   playerName,
			})
			if err != nil {
				return err
			}
			continue
		}
		candidates = append(candidates, loc)
	}

	for _, itemName := range d.Items {
		loc := nextFree(candidates)
		if loc == nil {
			err := fail(ctx, d.Force, report, ErrPlannedLocation, d, itemName, "", msgNoLocation, messageData{
				Item:     itemName,
				Player:   playerName,
				Location: strings.Join(d.Locations, ", "),
			})
			if err != nil {
				return err
			}
			continue
		}

		item, fromPool, err := plannedItem(ctx, world, d, itemName, report)
		if err != nil {
			return err
		}
		if item == nil {
			continue
		}

		err = world.Place(loc, item)
		if err != nil {
			if fromPool {
				world.Pool().Add(item)
			}
			ferr := fail(ctx, d.Force, report, ErrPlannedLocation, d, itemName, loc.Name, msgPlaceFailed, messageData{
				Item:     itemName,
				Location: loc.Name,
				Player:   playerName,
				Detail:   err.Error(),
			})
			if ferr != nil {
				return ferr
			}
			continue
		}
		loc.Locked = true
		report.Placed = append(report.Placed, loc)

		slog.DebugContext(ctx, "planned item placed", "player", playerName, "item", itemName, "location", loc.Name)
	}

	return nil
}

// plannedItem returns the item instance to place and whether it came from the
// pool. A nil item with a nil error means the directive entry is skipped.
func plannedItem(ctx context.Context, world PlannedWorld, d Directive, name string, report *PlanReport) (*multiworld.Item, bool, error) {
	playerName := world.PlayerName(d.Player)

	if d.FromPool {
		if item := world.Pool().Take(d.Player, name); item != nil {
			return item, true, nil
		}
		err := fail(ctx, d.Force, report, ErrPlannedItemMissing, d, name, "", msgMissingFromPool, messageData{
			Item:   name,
			Player: playerName,
		})
		if err != nil {
			return nil, false, err
		}
	}

	item, err := world.CreateItem(d.Player, name)
	if err != nil {
		ferr := fail(ctx, d.Force, report, ErrPlannedItem, d, name, "", msgUnknownItem, messageData{
			Item:   name,
			Player: playerName,
			Detail: err.Error(),
		})
		return nil, false, ferr
	}
	return item, false, nil
}

// fail applies the directive's force policy to a rendered failure message.
// It only returns an error under ForceStrict.
func fail(ctx context.Context, policy ForcePolicy, report *PlanReport, kind error, d Directive, item, location, tmpl string, data messageData) error {
	msg := renderMessage(tmpl, data)

	switch policy {
	case ForceStrict:
		return &PlannedError{
			Player:     d.Player,
			PlayerName: data.Player,
			Item:       item,
			Location:   location,
			Message:    msg,
			kind:       kind,
		}
	case ForceWarn:
		slog.WarnContext(ctx, msg, "player", data.Player, "item", item, "location", location)
		report.Warnings = append(report.Warnings, msg)
	default:
		slog.DebugContext(ctx, msg, "player", data.Player, "item", item, "location", location)
	}
	return nil
}

func nextFree(locs []*multiworld.Location) *multiworld.Location {
	for _, l := range locs {
		if !l.Filled() && !l.Locked {
			return l
		}
	}
	return nil
}
