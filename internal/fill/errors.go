package fill

import (
	"errors"
	"fmt"

	"github.com/pixil98/go-multifill/internal/multiworld"
)

var (
	ErrStructural         = errors.New("structural placement failure")
	ErrPlannedItemMissing = errors.New("planned item missing from pool")
	ErrPlannedLocation    = errors.New("planned location unavailable")
	ErrPlannedItem        = errors.New("planned item unavailable")
)

// FillError aborts generation when an advancement item cannot be placed
// reachably.
type FillError struct {
	Player     multiworld.PlayerID
	PlayerName string
	Item       string
	Reason     string
}

func (e *FillError) Error() string {
	if e.Item == "" {
		return e.Reason
	}
	return fmt.Sprintf("placing %s for %s: %s", e.Item, e.PlayerName, e.Reason)
}

func (e *FillError) Unwrap() error {
	return ErrStructural
}

// PlannedError reports a planned directive that could not be honored.
type PlannedError struct {
	Player     multiworld.PlayerID
	PlayerName string
	Item       string
	Location   string
	Message    string

	kind error
}

func (e *PlannedError) Error() string {
	return e.Message
}

func (e *PlannedError) Unwrap() error {
	return e.kind
}

// IsStructural reports whether err is a structural placement failure.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsPlannedError reports whether err came from a strict planned directive.
func IsPlannedError(err error) bool {
	var pe *PlannedError
	return errors.As(err, &pe)
}
