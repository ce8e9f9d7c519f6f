package multiworld

import (
	"fmt"
	"strings"
)

// PlayerID identifies a player slot within a multiworld. Slots start at 1.
type PlayerID int

// Accessibility controls how much of a player's world must stay reachable.
type Accessibility int

const (
	AccessibilityFull Accessibility = iota
	AccessibilityItems
	AccessibilityMinimal
)

func (a Accessibility) String() string {
	switch a {
	case AccessibilityFull:
		return "full"
	case AccessibilityItems:
		return "items"
	case AccessibilityMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("accessibility(%d)", int(a))
	}
}

// ParseAccessibility converts a setting string into an Accessibility.
func ParseAccessibility(s string) (Accessibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "locations":
		return AccessibilityFull, nil
	case "items":
		return AccessibilityItems, nil
	case "minimal":
		return AccessibilityMinimal, nil
	default:
		return AccessibilityFull, fmt.Errorf("unknown accessibility %q", s)
	}
}

func (a Accessibility) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accessibility) UnmarshalText(text []byte) error {
	v, err := ParseAccessibility(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Player is a single slot in the multiworld.
type Player struct {
	ID            PlayerID
	Name          string
	Accessibility Accessibility

	// Goal is satisfied once the player can complete their win condition.
	// A nil goal is never satisfied.
	Goal Rule
}
