package seed

import (
	"fmt"
	"path/filepath"

	"github.com/pixil98/go-multifill/internal/fill"
	"github.com/pixil98/go-multifill/internal/multiworld"
)

// Build constructs the multiworld described by the seed and returns it with
// the planned directives of every player, in player order.
func (s *Spec) Build(optionsDir string) (*multiworld.MultiWorld, []fill.Directive, error) {
	w := multiworld.New()
	var directives []fill.Directive

	for _, ps := range s.Players {
		p, planned, err := s.buildPlayer(ps, optionsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("player %d: %w", ps.ID, err)
		}
		if err := w.AddPlayer(p); err != nil {
			return nil, nil, err
		}
		directives = append(directives, planned...)
	}

	for _, is := range s.Items {
		player := multiworld.PlayerID(is.Player)
		if err := w.DefineItem(player, is.Name, is.Advancement); err != nil {
			return nil, nil, err
		}
		count := max(is.Count, 1)
		for range count {
			w.Pool().Add(multiworld.NewItem(is.Name, player, is.Advancement))
		}
	}

	for _, ls := range s.Locations {
		var rule multiworld.Rule
		if len(ls.Requires) > 0 {
			rule = multiworld.Requirement{Player: multiworld.PlayerID(ls.Player), Items: ls.Requires}
		}
		loc := multiworld.NewLocation(ls.Name, multiworld.PlayerID(ls.Player), ls.ProgressType, rule)
		if err := w.AddLocation(loc); err != nil {
			return nil, nil, err
		}
	}

	for i, pl := range s.Placements {
		if err := place(w, pl); err != nil {
			return nil, nil, fmt.Errorf("placement %d: %w", i, err)
		}
	}

	for i, ref := range s.Precollected {
		if err := precollect(w, ref); err != nil {
			return nil, nil, fmt.Errorf("precollected %d: %w", i, err)
		}
	}

	return w, directives, nil
}

func (s *Spec) buildPlayer(ps PlayerSpec, optionsDir string) (*multiworld.Player, []fill.Directive, error) {
	name := ps.Name
	access := ps.Accessibility
	plando := ps.PlandoItems

	if ps.OptionsFile != "" {
		path := ps.OptionsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(optionsDir, path)
		}
		opts, err := LoadOptions(path)
		if err != nil {
			return nil, nil, err
		}
		if opts.Name != "" {
			name = opts.Name
		}
		if opts.Accessibility != "" {
			access = opts.Accessibility
		}
		plando = append(plando, opts.PlandoItems...)
	}

	p := &multiworld.Player{
		ID:            multiworld.PlayerID(ps.ID),
		Name:          name,
		Accessibility: multiworld.AccessibilityFull,
	}
	if access != "" {
		a, err := multiworld.ParseAccessibility(access)
		if err != nil {
			return nil, nil, err
		}
		p.Accessibility = a
	}
	if len(ps.Goal) > 0 {
		p.Goal = multiworld.Requirement{Player: p.ID, Items: ps.Goal}
	}

	directives := make([]fill.Directive, 0, len(plando))
	for i, ds := range plando {
		d, err := ds.Directive(p.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("plando_items %d: %w", i, err)
		}
		directives = append(directives, d)
	}

	return p, directives, nil
}

func place(w *multiworld.MultiWorld, pl PlacementSpec) error {
	owner := multiworld.PlayerID(pl.Player)
	loc := w.Location(owner, pl.Location)
	if loc == nil {
		return fmt.Errorf("unknown location %q for %s", pl.Location, w.PlayerName(owner))
	}

	itemPlayer := owner
	if pl.ItemPlayer != 0 {
		itemPlayer = multiworld.PlayerID(pl.ItemPlayer)
	}
	item := w.Pool().Take(itemPlayer, pl.Item)
	if item == nil {
		return fmt.Errorf("no %s left in the pool for %s", pl.Item, w.PlayerName(itemPlayer))
	}

	return w.Place(loc, item)
}

// precollect grants a leftover pool copy of the item, or a fresh one when the
// pool has none.
func precollect(w *multiworld.MultiWorld, ref ItemRef) error {
	player := multiworld.PlayerID(ref.Player)
	item := w.Pool().Take(player, ref.Name)
	if item == nil {
		var err error
		item, err = w.CreateItem(player, ref.Name)
		if err != nil {
			return err
		}
	}
	w.Precollect(item)
	return nil
}
