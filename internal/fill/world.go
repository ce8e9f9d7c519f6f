package fill

import "github.com/pixil98/go-multifill/internal/multiworld"

// HasPlayers exposes per-player settings.
type HasPlayers interface {
	PlayerIDs() []multiworld.PlayerID
	PlayerName(multiworld.PlayerID) string
	Accessibility(multiworld.PlayerID) multiworld.Accessibility
}

// Reachable answers which locations hold items and whether a player can win.
type Reachable interface {
	FilledLocations(multiworld.PlayerID) []*multiworld.Location
	HasBeatenGame(*multiworld.State, multiworld.PlayerID) bool
}

// HasPool exposes the shared pool of unplaced items.
type HasPool interface {
	Pool() *multiworld.Pool
}

// Placer moves items between the pool and locations.
type Placer interface {
	Place(*multiworld.Location, *multiworld.Item) error
	Unplace(*multiworld.Location) *multiworld.Item
}

// CorrectionWorld is everything the Corrector needs from a multiworld.
type CorrectionWorld interface {
	HasPlayers
	Reachable
	Placer
}

// PlannedWorld is everything DistributePlanned needs from a multiworld.
type PlannedWorld interface {
	HasPlayers
	HasPool
	Placer
	Location(multiworld.PlayerID, string) *multiworld.Location
	CreateItem(multiworld.PlayerID, string) (*multiworld.Item, error)
}
