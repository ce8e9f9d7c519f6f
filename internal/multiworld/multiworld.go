package multiworld

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// MultiWorld holds every player's locations and items for one generation run.
// It is not safe for concurrent use; independent runs use independent worlds.
type MultiWorld struct {
	players   []*Player
	byID      map[PlayerID]*Player
	locations []*Location
	byName    map[PlayerID]map[string]*Location
	itemDefs  map[PlayerID]map[string]bool

	pool *Pool

	precollected []*Item
	placements   int
}

// New creates an empty multiworld.
func New() *MultiWorld {
	return &MultiWorld{
		byID:     map[PlayerID]*Player{},
		byName:   map[PlayerID]map[string]*Location{},
		itemDefs: map[PlayerID]map[string]bool{},
		pool:     NewPool(),
	}
}

// Pool returns the shared pool of unplaced items.
func (w *MultiWorld) Pool() *Pool {
	return w.pool
}

// AddPlayer registers a player slot.
func (w *MultiWorld) AddPlayer(p *Player) error {
	if _, ok := w.byID[p.ID]; ok {
		return fmt.Errorf("player %d: %w", p.ID, ErrDuplicatePlayer)
	}
	w.players = append(w.players, p)
	w.byID[p.ID] = p
	w.byName[p.ID] = map[string]*Location{}
	w.itemDefs[p.ID] = map[string]bool{}
	return nil
}

// Player returns the player with the given id.
func (w *MultiWorld) Player(id PlayerID) (*Player, bool) {
	p, ok := w.byID[id]
	return p, ok
}

// Players returns all players in registration order.
func (w *MultiWorld) Players() []*Player {
	return slices.Clone(w.players)
}

// PlayerIDs returns all player ids in registration order.
func (w *MultiWorld) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(w.players))
	for i, p := range w.players {
		ids[i] = p.ID
	}
	return ids
}

// PlayerName returns the display name for id, falling back to "Player N".
func (w *MultiWorld) PlayerName(id PlayerID) string {
	if p, ok := w.byID[id]; ok && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("Player %d", id)
}

// Accessibility returns the accessibility policy for id. Unknown players are
// treated as full.
func (w *MultiWorld) Accessibility(id PlayerID) Accessibility {
	if p, ok := w.byID[id]; ok {
		return p.Accessibility
	}
	return AccessibilityFull
}

// AddLocation registers a location in its owner's world.
func (w *MultiWorld) AddLocation(loc *Location) error {
	names, ok := w.byName[loc.Player]
	if !ok {
		return fmt.Errorf("location %q: player %d: %w", loc.Name, loc.Player, ErrUnknownPlayer)
	}
	if _, ok := names[loc.Name]; ok {
		return fmt.Errorf("location %q: %w", loc.Name, ErrDuplicateLocation)
	}
	names[loc.Name] = loc
	w.locations = append(w.locations, loc)
	return nil
}

// Location looks up a location by owner and name. Returns nil if not found.
func (w *MultiWorld) Location(player PlayerID, name string) *Location {
	return w.byName[player][name]
}

// Locations returns every location in registration order.
func (w *MultiWorld) Locations() []*Location {
	return slices.Clone(w.locations)
}

// FilledLocations returns the player's filled locations in the order they
// were filled.
func (w *MultiWorld) FilledLocations(player PlayerID) []*Location {
	var filled []*Location
	for _, loc := range w.locations {
		if loc.Player == player && loc.item != nil {
			filled = append(filled, loc)
		}
	}
	slices.SortStableFunc(filled, func(a, b *Location) int {
		return a.seq - b.seq
	})
	return filled
}

// UnfilledLocations returns every empty location in registration order.
func (w *MultiWorld) UnfilledLocations() []*Location {
	var empty []*Location
	for _, loc := range w.locations {
		if loc.item == nil {
			empty = append(empty, loc)
		}
	}
	return empty
}

// DefineItem declares an item that CreateItem may build for player.
func (w *MultiWorld) DefineItem(player PlayerID, name string, advancement bool) error {
	defs, ok := w.itemDefs[player]
	if !ok {
		return fmt.Errorf("item %q: player %d: %w", name, player, ErrUnknownPlayer)
	}
	defs[name] = advancement
	return nil
}

// CreateItem builds a fresh, unplaced instance of a defined item.
func (w *MultiWorld) CreateItem(player PlayerID, name string) (*Item, error) {
	defs, ok := w.itemDefs[player]
	if !ok {
		return nil, fmt.Errorf("item %q: player %d: %w", name, player, ErrUnknownPlayer)
	}
	adv, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("item %q for %s: %w", name, w.PlayerName(player), ErrUnknownItem)
	}
	return NewItem(name, player, adv), nil
}

// Precollect grants item to its player from the start. Precollected items
// are owned by neither the pool nor a location.
func (w *MultiWorld) Precollect(item *Item) {
	w.pool.Remove(item)
	w.precollected = append(w.precollected, item)
}

// Place puts item into loc, taking it out of the pool if it is there.
func (w *MultiWorld) Place(loc *Location, item *Item) error {
	if loc.item != nil {
		return fmt.Errorf("placing %s at %s: %w", item, loc, ErrLocationFilled)
	}
	if item.placement.IsPlaced() {
		return fmt.Errorf("placing %s at %s: %w", item, loc, ErrItemPlaced)
	}
	w.pool.Remove(item)

	w.placements++
	loc.seq = w.placements
	loc.item = item
	item.placement = PlacedAt(loc)
	return nil
}

// Unplace clears loc and returns the item it held, or nil if it was empty.
// The caller takes ownership of the returned item.
func (w *MultiWorld) Unplace(loc *Location) *Item {
	item := loc.item
	if item == nil {
		return nil
	}
	loc.item = nil
	loc.seq = 0
	item.placement = Unplaced
	return item
}

// HasBeatenGame reports whether player's goal is satisfied under state.
func (w *MultiWorld) HasBeatenGame(state *State, player PlayerID) bool {
	p, ok := w.byID[player]
	if !ok || p.Goal == nil {
		return false
	}
	return p.Goal.Satisfied(state)
}

// Validate checks the ownership invariant: every pool item is unplaced and
// every held item refers back to its location.
func (w *MultiWorld) Validate() error {
	el := errors.NewErrorList()

	seen := map[*Item]string{}
	for _, it := range w.pool.items {
		if it.placement.IsPlaced() {
			el.Add(fmt.Errorf("pool item %s is placed at %s", it, it.placement.at))
		}
		if prev, ok := seen[it]; ok {
			el.Add(fmt.Errorf("item %s is owned by both %s and the pool", it, prev))
		}
		seen[it] = "the pool"
	}

	for _, loc := range w.locations {
		it := loc.item
		if it == nil {
			continue
		}
		if it.placement.at != loc {
			el.Add(fmt.Errorf("item %s at %s does not refer back to it", it, loc))
		}
		if prev, ok := seen[it]; ok {
			el.Add(fmt.Errorf("item %s is owned by both %s and %s", it, prev, loc))
		}
		seen[it] = loc.String()
	}

	return el.Err()
}
