package fill

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-multifill/internal/multiworld"
	"github.com/pixil98/go-testutil"
)

func plannedWorld(t *testing.T) *multiworld.MultiWorld {
	t.Helper()

	w := multiworld.New()
	if err := w.AddPlayer(&multiworld.Player{ID: 1, Name: "TestPlayer", Accessibility: multiworld.AccessibilityMinimal}); err != nil {
		t.Fatalf("adding player: %v", err)
	}
	if err := w.AddPlayer(&multiworld.Player{ID: 2, Name: "Other"}); err != nil {
		t.Fatalf("adding player: %v", err)
	}
	for _, l := range []*multiworld.Location{
		multiworld.NewLocation("Some Location", 1, multiworld.ProgressDefault, nil),
		multiworld.NewLocation("Other Location", 1, multiworld.ProgressDefault, nil),
		multiworld.NewLocation("Far Location", 2, multiworld.ProgressDefault, nil),
	} {
		if err := w.AddLocation(l); err != nil {
			t.Fatalf("adding location: %v", err)
		}
	}
	if err := w.DefineItem(1, "Some Item", true); err != nil {
		t.Fatalf("defining item: %v", err)
	}
	return w
}

func TestDistributePlanned_FromPoolMissingWarns(t *testing.T) {
	w := plannedWorld(t)

	directives := []Directive{{
		Player:    1,
		Items:     []string{"Some Item"},
		Locations: []string{"Some Location"},
		FromPool:  true,
		Force:     ForceWarn,
	}}

	report, err := DistributePlanned(context.Background(), w, directives)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "warnings", len(report.Warnings), 1)
	testutil.AssertEqual(t, "warning", report.Warnings[0],
		"Could not remove Some Item from pool for TestPlayer as it's already missing from it.")

	loc := w.Location(1, "Some Location")
	if loc.Item() == nil {
		t.Fatal("expected a freshly created item to be placed")
	}
	testutil.AssertEqual(t, "placed item", loc.Item().Name, "Some Item")
	testutil.AssertEqual(t, "locked", loc.Locked, true)
}

func TestDistributePlanned_ForcePolicies(t *testing.T) {
	tests := map[string]struct {
		force       ForcePolicy
		expWarnings int
		expErr      error
	}{
		"none ignores": {
			force: ForceNone,
		},
		"warn reports": {
			force:       ForceWarn,
			expWarnings: 1,
		},
		"strict aborts": {
			force:  ForceStrict,
			expErr: ErrPlannedItemMissing,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := plannedWorld(t)
			directives := []Directive{{
				Player:    1,
				Items:     []string{"Some Item"},
				Locations: []string{"Some Location"},
				FromPool:  true,
				Force:     tt.force,
			}}

			report, err := DistributePlanned(context.Background(), w, directives)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("error = %v, expected %v", err, tt.expErr)
				}
				var pe *PlannedError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *PlannedError, got %T", err)
				}
				testutil.AssertEqual(t, "player name", pe.PlayerName, "TestPlayer")
				testutil.AssertEqual(t, "item", pe.Item, "Some Item")
				testutil.AssertEqual(t, "location untouched", w.Location(1, "Some Location").Filled(), false)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "warnings", len(report.Warnings), tt.expWarnings)
		})
	}
}

func TestDistributePlanned_TakesFromPool(t *testing.T) {
	w := plannedWorld(t)
	pooled := multiworld.NewItem("Some Item", 1, true)
	w.Pool().Add(pooled)

	report, err := DistributePlanned(context.Background(), w, []Directive{{
		Player:    1,
		Items:     []string{"Some Item"},
		Locations: []string{"Some Location"},
		FromPool:  true,
		Force:     ForceStrict,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "warnings", len(report.Warnings), 0)
	testutil.AssertEqual(t, "placed", len(report.Placed), 1)
	testutil.AssertEqual(t, "same instance", w.Location(1, "Some Location").Item(), pooled)
	testutil.AssertEqual(t, "pool", w.Pool().Len(), 0)
}

func TestDistributePlanned_OtherWorld(t *testing.T) {
	w := plannedWorld(t)

	_, err := DistributePlanned(context.Background(), w, []Directive{{
		Player:    1,
		World:     2,
		Items:     []string{"Some Item"},
		Locations: []string{"Far Location"},
		Force:     ForceStrict,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := w.Location(2, "Far Location").Item()
	if item == nil {
		t.Fatal("expected far location to be filled")
	}
	testutil.AssertEqual(t, "item owner", item.Player, multiworld.PlayerID(1))
}

func TestDistributePlanned_Failures(t *testing.T) {
	tests := map[string]struct {
		directive  Directive
		expWarning string
	}{
		"unknown location": {
			directive: Directive{
				Player:    1,
				Items:     []string{"Some Item"},
				Locations: []string{"Nowhere"},
				Force:     ForceWarn,
			},
			expWarning: "Could not find location Nowhere in the world of TestPlayer for TestPlayer.",
		},
		"unknown item": {
			directive: Directive{
				Player:    1,
				Items:     []string{"Mystery"},
				Locations: []string{"Some Location"},
				Force:     ForceWarn,
			},
			expWarning: "Could not create Mystery for TestPlayer",
		},
		"more items than locations": {
			directive: Directive{
				Player:    1,
				Items:     []string{"Some Item", "Some Item"},
				Locations: []string{"Some Location"},
				Force:     ForceWarn,
			},
			expWarning: "Could not place Some Item for TestPlayer: none of Some Location are free.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := plannedWorld(t)

			report, err := DistributePlanned(context.Background(), w, []Directive{tt.directive})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(report.Warnings) == 0 {
				t.Fatal("expected a warning")
			}
			found := false
			for _, msg := range report.Warnings {
				if strings.HasPrefix(msg, tt.expWarning) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %q do not include %q", report.Warnings, tt.expWarning)
			}
		})
	}
}

func TestParseForcePolicy(t *testing.T) {
	tests := map[string]struct {
		raw    string
		exp    ForcePolicy
		expErr bool
	}{
		"empty":  {raw: "", exp: ForceNone},
		"silent": {raw: "silent", exp: ForceNone},
		"warn":   {raw: "warn", exp: ForceWarn},
		"false":  {raw: "false", exp: ForceWarn},
		"true":   {raw: "True", exp: ForceStrict},
		"strict": {raw: "strict", exp: ForceStrict},
		"bogus":  {raw: "maybe", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseForcePolicy(tt.raw)
			if tt.expErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "policy", got, tt.exp)
		})
	}
}
