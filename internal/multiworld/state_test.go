package multiworld

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

// chainWorld builds a world where each location requires the item held by
// the previous one: Start -> Key A -> Key B.
func chainWorld(t *testing.T) (*MultiWorld, []*Location) {
	t.Helper()

	w := New()
	if err := w.AddPlayer(&Player{ID: 1, Name: "Alice"}); err != nil {
		t.Fatalf("adding player: %v", err)
	}

	locs := []*Location{
		NewLocation("Start", 1, ProgressDefault, nil),
		NewLocation("Gate A", 1, ProgressDefault, Requirement{Player: 1, Items: map[string]int{"Key A": 1}}),
		NewLocation("Gate B", 1, ProgressDefault, Requirement{Player: 1, Items: map[string]int{"Key B": 1}}),
	}
	items := []*Item{
		NewItem("Key A", 1, true),
		NewItem("Key B", 1, true),
		NewItem("Rupee", 1, false),
	}
	for i, l := range locs {
		if err := w.AddLocation(l); err != nil {
			t.Fatalf("adding location: %v", err)
		}
		if err := w.Place(l, items[i]); err != nil {
			t.Fatalf("placing: %v", err)
		}
	}
	return w, locs
}

func TestState_Sweep(t *testing.T) {
	w, locs := chainWorld(t)
	s := NewState(w)

	testutil.AssertEqual(t, "collected", s.Sweep(), 2)
	testutil.AssertEqual(t, "key a", s.Count(1, "Key A"), 1)
	testutil.AssertEqual(t, "key b", s.Count(1, "Key B"), 1)
	testutil.AssertEqual(t, "rupee not collected", s.Count(1, "Rupee"), 0)
	testutil.AssertEqual(t, "start checked", s.Checked(locs[0]), true)
	testutil.AssertEqual(t, "gate b checked", s.Checked(locs[2]), false)

	testutil.AssertEqual(t, "second sweep", s.Sweep(), 0)
}

func TestState_Forget(t *testing.T) {
	w, locs := chainWorld(t)
	s := NewState(w)
	s.Sweep()

	item := w.Unplace(locs[1])
	testutil.AssertEqual(t, "forgotten", s.Forget(locs[1], item), true)
	testutil.AssertEqual(t, "key b count", s.Count(1, "Key B"), 0)
	testutil.AssertEqual(t, "forget twice", s.Forget(locs[1], item), false)
}

func TestState_Copy(t *testing.T) {
	w, _ := chainWorld(t)
	s := NewState(w)
	s.Sweep()

	cp := s.Copy()
	cp.Collect(NewItem("Key A", 1, true))

	testutil.AssertEqual(t, "original", s.Count(1, "Key A"), 1)
	testutil.AssertEqual(t, "copy", cp.Count(1, "Key A"), 2)
}

func TestState_Precollected(t *testing.T) {
	w, _ := chainWorld(t)
	w.Precollect(NewItem("Key B", 1, true))

	s := NewState(w)
	testutil.AssertEqual(t, "precollected", s.Has(1, "Key B", 1), true)
}
