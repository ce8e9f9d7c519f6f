package seed

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-multifill/internal/fill"
	"github.com/pixil98/go-multifill/internal/multiworld"
	"github.com/pixil98/go-multifill/internal/storage"
)

// Spec describes one multiworld: its players, locations and item pool, and the
// placements produced by the external fill pass.
type Spec struct {
	Players    []PlayerSpec    `json:"players"`
	Locations  []LocationSpec  `json:"locations"`
	Items      []ItemSpec      `json:"items"`
	Placements []PlacementSpec `json:"placements,omitempty"`

	// Precollected items are granted to their owner from the start.
	Precollected []ItemRef `json:"precollected,omitempty"`
}

type PlayerSpec struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Accessibility string         `json:"accessibility,omitempty"`
	Goal          map[string]int `json:"goal,omitempty"`

	// OptionsFile names a YAML options file overriding the fields above and
	// adding planned directives. Relative paths resolve against the options
	// directory given to Build.
	OptionsFile string          `json:"options_file,omitempty"`
	PlandoItems []DirectiveSpec `json:"plando_items,omitempty"`

	SlotData storage.SlotData `json:"slot_data,omitempty"`
}

type LocationSpec struct {
	Name         string                  `json:"name"`
	Player       int                     `json:"player"`
	ProgressType multiworld.ProgressType `json:"progress_type"`
	Requires     map[string]int          `json:"requires,omitempty"`
}

type ItemSpec struct {
	Name        string `json:"name"`
	Player      int    `json:"player"`
	Advancement bool   `json:"advancement"`

	// Count is the number of copies in the pool. Zero means one.
	Count int `json:"count,omitempty"`
}

// PlacementSpec puts an item owned by ItemPlayer at a location owned by Player.
// ItemPlayer defaults to Player.
type PlacementSpec struct {
	Location   string `json:"location"`
	Player     int    `json:"player"`
	Item       string `json:"item"`
	ItemPlayer int    `json:"item_player,omitempty"`
}

// DirectiveSpec is the serialized form of a planned placement. Item and
// Location are shorthands for single-entry Items and Locations.
type DirectiveSpec struct {
	Item      string   `json:"item,omitempty" yaml:"item"`
	Items     []string `json:"items,omitempty" yaml:"items"`
	Location  string   `json:"location,omitempty" yaml:"location"`
	Locations []string `json:"locations,omitempty" yaml:"locations"`
	World     int      `json:"world,omitempty" yaml:"world"`
	FromPool  *bool    `json:"from_pool,omitempty" yaml:"from_pool"`
	Force     string   `json:"force,omitempty" yaml:"force"`
}

func (d DirectiveSpec) Validate() error {
	el := errors.NewErrorList()

	if d.Item == "" && len(d.Items) == 0 {
		el.Add(fmt.Errorf("item or items is required"))
	}
	if d.Location == "" && len(d.Locations) == 0 {
		el.Add(fmt.Errorf("location or locations is required"))
	}
	if _, err := fill.ParseForcePolicy(d.Force); err != nil {
		el.Add(err)
	}

	return el.Err()
}

// Directive converts the directive entry into a fill directive owned by player.
// from_pool defaults to true.
func (d DirectiveSpec) Directive(player multiworld.PlayerID) (fill.Directive, error) {
	force, err := fill.ParseForcePolicy(d.Force)
	if err != nil {
		return fill.Directive{}, err
	}

	items := d.Items
	if d.Item != "" {
		items = append([]string{d.Item}, items...)
	}
	locations := d.Locations
	if d.Location != "" {
		locations = append([]string{d.Location}, locations...)
	}

	fromPool := true
	if d.FromPool != nil {
		fromPool = *d.FromPool
	}

	return fill.Directive{
		Player:    player,
		Items:     items,
		Locations: locations,
		World:     multiworld.PlayerID(d.World),
		FromPool:  fromPool,
		Force:     force,
	}, nil
}

// Validate satisfies storage.ValidatingSpec
func (s *Spec) Validate() error {
	el := errors.NewErrorList()

	if len(s.Players) == 0 {
		el.Add(fmt.Errorf("at least one player is required"))
	}

	ids := map[int]bool{}
	for i, p := range s.Players {
		if p.ID < 1 {
			el.Add(fmt.Errorf("player %d: id must be positive", i))
		}
		if ids[p.ID] {
			el.Add(fmt.Errorf("player %d: duplicate id %d", i, p.ID))
		}
		ids[p.ID] = true
		if p.Accessibility != "" {
			if _, err := multiworld.ParseAccessibility(p.Accessibility); err != nil {
				el.Add(fmt.Errorf("player %d: %w", p.ID, err))
			}
		}
		for j, d := range p.PlandoItems {
			if err := d.Validate(); err != nil {
				el.Add(fmt.Errorf("player %d: plando_items %d: %w", p.ID, j, err))
			}
		}
	}

	for i, l := range s.Locations {
		if l.Name == "" {
			el.Add(fmt.Errorf("location %d: name is required", i))
		}
		if !ids[l.Player] {
			el.Add(fmt.Errorf("location %q: unknown player %d", l.Name, l.Player))
		}
	}

	for i, it := range s.Items {
		if it.Name == "" {
			el.Add(fmt.Errorf("item %d: name is required", i))
		}
		if !ids[it.Player] {
			el.Add(fmt.Errorf("item %q: unknown player %d", it.Name, it.Player))
		}
		if it.Count < 0 {
			el.Add(fmt.Errorf("item %q: count must not be negative", it.Name))
		}
	}

	for i, p := range s.Placements {
		if p.Location == "" || p.Item == "" {
			el.Add(fmt.Errorf("placement %d: location and item are required", i))
		}
	}

	for i, r := range s.Precollected {
		if r.Name == "" {
			el.Add(fmt.Errorf("precollected %d: name is required", i))
		}
		if !ids[r.Player] {
			el.Add(fmt.Errorf("precollected %q: unknown player %d", r.Name, r.Player))
		}
	}

	return el.Err()
}
