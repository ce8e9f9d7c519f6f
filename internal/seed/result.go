package seed

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-multifill/internal/multiworld"
	"github.com/pixil98/go-multifill/internal/storage"
)

type Status string

const (
	StatusGenerated Status = "generated"
	StatusFailed    Status = "failed"
)

// Cause classifies why a seed failed.
type Cause string

const (
	// CauseInvalid means the seed file could not be loaded or validated.
	CauseInvalid Cause = "invalid"
	// CauseBuild means the seed described an inconsistent multiworld.
	CauseBuild Cause = "build"
	// CausePlanned means a strict planned directive could not be honored.
	CausePlanned Cause = "planned"
	// CauseStructural means accessibility correction could not place an item.
	CauseStructural Cause = "structural"
)

// Result is the outcome of generating one seed.
type Result struct {
	RunID    string          `json:"run_id"`
	Seed     string          `json:"seed"`
	Status   Status          `json:"status"`
	Cause    Cause           `json:"cause,omitempty"`
	Error    string          `json:"error,omitempty"`
	Freed    int             `json:"freed"`
	Warnings []string        `json:"warnings,omitempty"`
	Players  []ResultPlayer  `json:"players,omitempty"`
	Placed   []PlacementSpec `json:"placed,omitempty"`
	Unplaced []ItemRef       `json:"unplaced,omitempty"`
}

type ResultPlayer struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Accessibility string           `json:"accessibility"`
	SlotData      storage.SlotData `json:"slot_data,omitempty"`
}

type ItemRef struct {
	Name   string `json:"name"`
	Player int    `json:"player"`
}

// Validate satisfies storage.ValidatingSpec
func (r *Result) Validate() error {
	el := errors.NewErrorList()

	if r.RunID == "" {
		el.Add(fmt.Errorf("run_id is required"))
	}
	switch r.Status {
	case StatusGenerated:
	case StatusFailed:
		if r.Error == "" {
			el.Add(fmt.Errorf("failed result requires an error"))
		}
	default:
		el.Add(fmt.Errorf("unknown status %q", r.Status))
	}

	return el.Err()
}

// Snapshot records the world's final assignment into the result.
func (r *Result) Snapshot(w *multiworld.MultiWorld, slotData map[multiworld.PlayerID]storage.SlotData) {
	r.Players = r.Players[:0]
	for _, p := range w.Players() {
		r.Players = append(r.Players, ResultPlayer{
			ID:            int(p.ID),
			Name:          w.PlayerName(p.ID),
			Accessibility: p.Accessibility.String(),
			SlotData:      slotData[p.ID],
		})
	}

	r.Placed = r.Placed[:0]
	for _, loc := range w.Locations() {
		it := loc.Item()
		if it == nil {
			continue
		}
		r.Placed = append(r.Placed, PlacementSpec{
			Location:   loc.Name,
			Player:     int(loc.Player),
			Item:       it.Name,
			ItemPlayer: int(it.Player),
		})
	}

	r.Unplaced = r.Unplaced[:0]
	for _, it := range w.Pool().Items() {
		r.Unplaced = append(r.Unplaced, ItemRef{Name: it.Name, Player: int(it.Player)})
	}
}
