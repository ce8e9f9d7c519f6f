package spoiler

import (
	"strings"
	"testing"

	"github.com/pixil98/go-multifill/internal/seed"
	"github.com/pixil98/go-multifill/internal/storage"
)

func TestRender(t *testing.T) {
	var slot storage.SlotData
	if err := slot.Set("corrections", 1); err != nil {
		t.Fatalf("setting slot data: %v", err)
	}

	r := &seed.Result{
		RunID:  "run-1",
		Seed:   "seed-1",
		Status: seed.StatusGenerated,
		Freed:  1,
		Players: []seed.ResultPlayer{
			{ID: 1, Name: "Alice", Accessibility: "minimal", SlotData: slot},
			{ID: 2, Name: "Bob", Accessibility: "full"},
		},
		Placed: []seed.PlacementSpec{
			{Location: "Shrine", Player: 1, Item: "Key", ItemPlayer: 1},
			{Location: "Hut", Player: 2, Item: "Crown", ItemPlayer: 1},
		},
		Unplaced: []seed.ItemRef{{Name: "Rupee", Player: 2}},
		Warnings: []string{strings.Repeat("Could not remove Some Item from pool for Alice. ", 4)},
	}

	out := Render(r)

	for _, want := range []string{
		"Seed: seed-1",
		"Alice (Player 1, minimal accessibility)",
		"corrected placements: 1",
		"  Shrine: Key (Alice)",
		"  Hut: Crown (Alice)",
		"Rupee (Bob)",
		"Warnings:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("spoiler does not contain %q:\n%s", want, out)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line exceeds %d columns: %q", DefaultWidth, line)
		}
	}
}

func TestRender_Failed(t *testing.T) {
	out := Render(&seed.Result{RunID: "run-2", Seed: "seed-2", Status: seed.StatusFailed, Cause: seed.CauseStructural, Error: "placing Key for Alice: no reachable location"})

	if !strings.Contains(out, "Status: failed") {
		t.Errorf("missing status:\n%s", out)
	}
	if !strings.Contains(out, "Cause: structural") {
		t.Errorf("missing cause:\n%s", out)
	}
	if !strings.Contains(out, "placing Key for Alice") {
		t.Errorf("missing error:\n%s", out)
	}
}
