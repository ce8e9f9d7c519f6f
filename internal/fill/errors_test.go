package fill

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestErrorClassification(t *testing.T) {
	planned := &PlannedError{
		Player:     1,
		PlayerName: "Alice",
		Item:       "Key",
		Message:    "Could not remove Key from pool for Alice as it's already missing from it.",
		kind:       ErrPlannedItemMissing,
	}
	structural := &FillError{Player: 1, PlayerName: "Alice", Item: "Key", Reason: "no room"}

	tests := map[string]struct {
		err           error
		expPlanned    bool
		expStructural bool
	}{
		"nil": {
			err: nil,
		},
		"planned": {
			err:        planned,
			expPlanned: true,
		},
		"wrapped planned": {
			err:        fmt.Errorf("distributing planned items: %w", planned),
			expPlanned: true,
		},
		"structural": {
			err:           structural,
			expStructural: true,
		},
		"wrapped structural": {
			err:           fmt.Errorf("seed-1: %w", structural),
			expStructural: true,
		},
		"other": {
			err: errors.New("unknown location"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "planned", IsPlannedError(tt.err), tt.expPlanned)
			testutil.AssertEqual(t, "structural", IsStructural(tt.err), tt.expStructural)
		})
	}
}

func TestFillError_Error(t *testing.T) {
	tests := map[string]struct {
		err *FillError
		exp string
	}{
		"with item": {
			err: &FillError{PlayerName: "Alice", Item: "Key", Reason: "no room"},
			exp: "placing Key for Alice: no room",
		},
		"without item": {
			err: &FillError{Reason: "did not converge"},
			exp: "did not converge",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "message", tt.err.Error(), tt.exp)
		})
	}
}
