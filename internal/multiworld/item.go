package multiworld

import (
	"fmt"

	"github.com/google/uuid"
)

// Item is a single item instance. Each instance is owned by the pool or by
// exactly one Location; ownership only changes through MultiWorld.Place and
// MultiWorld.Unplace.
type Item struct {
	ID          string
	Name        string
	Player      PlayerID
	Advancement bool

	placement Placement
}

// NewItem creates an unplaced item instance.
func NewItem(name string, player PlayerID, advancement bool) *Item {
	return &Item{
		ID:          uuid.New().String(),
		Name:        name,
		Player:      player,
		Advancement: advancement,
	}
}

// Placement returns where the item currently lives.
func (i *Item) Placement() Placement {
	return i.placement
}

// Location returns the location holding the item, or nil if it is unplaced.
func (i *Item) Location() *Location {
	return i.placement.at
}

func (i *Item) String() string {
	return fmt.Sprintf("%s (Player %d)", i.Name, i.Player)
}

// Placement is either Unplaced (the zero value) or placed at a location.
type Placement struct {
	at *Location
}

// Unplaced is the placement of an item sitting in the pool.
var Unplaced = Placement{}

// PlacedAt returns the placement for an item held by loc.
func PlacedAt(loc *Location) Placement {
	return Placement{at: loc}
}

// IsPlaced reports whether the placement refers to a location.
func (p Placement) IsPlaced() bool {
	return p.at != nil
}

// Location returns the holding location and whether there is one.
func (p Placement) Location() (*Location, bool) {
	return p.at, p.at != nil
}
