package multiworld

import (
	"fmt"
	"strings"
)

// ProgressType classifies what may be placed at a location.
type ProgressType int

const (
	ProgressDefault ProgressType = iota
	ProgressPriority
	ProgressExcluded
)

func (p ProgressType) String() string {
	switch p {
	case ProgressDefault:
		return "default"
	case ProgressPriority:
		return "priority"
	case ProgressExcluded:
		return "excluded"
	default:
		return fmt.Sprintf("progress(%d)", int(p))
	}
}

func (p ProgressType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ProgressType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "default", "normal":
		*p = ProgressDefault
	case "priority":
		*p = ProgressPriority
	case "excluded":
		*p = ProgressExcluded
	default:
		return fmt.Errorf("unknown progress type %q", text)
	}
	return nil
}

// Location is a slot in a player's world that can hold one item.
type Location struct {
	Name         string
	Player       PlayerID
	ProgressType ProgressType
	Locked       bool

	// Rule gates access to the location. A nil rule is always satisfied.
	Rule Rule

	item *Item
	seq  int
}

// NewLocation creates an empty location.
func NewLocation(name string, player PlayerID, pt ProgressType, rule Rule) *Location {
	return &Location{
		Name:         name,
		Player:       player,
		ProgressType: pt,
		Rule:         rule,
	}
}

// Item returns the held item, or nil if the location is empty.
func (l *Location) Item() *Item {
	return l.item
}

// Filled reports whether the location holds an item.
func (l *Location) Filled() bool {
	return l.item != nil
}

// CanReach reports whether the location is accessible under state.
func (l *Location) CanReach(state *State) bool {
	if l.Rule == nil {
		return true
	}
	return l.Rule.Satisfied(state)
}

// CanFill reports whether item may be placed here under state.
func (l *Location) CanFill(state *State, item *Item) bool {
	if l.item != nil || l.Locked {
		return false
	}
	if item.Advancement && l.ProgressType == ProgressExcluded {
		return false
	}
	return l.CanReach(state)
}

func (l *Location) String() string {
	return fmt.Sprintf("%s (Player %d)", l.Name, l.Player)
}
