package multiworld

// State is the collection view used to evaluate reachability. It tracks the
// advancement items each player has collected and the locations they came from.
type State struct {
	world   *MultiWorld
	counts  map[PlayerID]map[string]int
	checked map[*Location]bool
}

// NewState creates a state seeded with the world's precollected items.
// The state is not swept.
func NewState(w *MultiWorld) *State {
	s := &State{
		world:   w,
		counts:  map[PlayerID]map[string]int{},
		checked: map[*Location]bool{},
	}
	for _, it := range w.precollected {
		s.Collect(it)
	}
	return s
}

// Collect adds item to the player's collected set.
func (s *State) Collect(item *Item) {
	c, ok := s.counts[item.Player]
	if !ok {
		c = map[string]int{}
		s.counts[item.Player] = c
	}
	c[item.Name]++
}

// Has reports whether player holds at least count of the named item.
func (s *State) Has(player PlayerID, name string, count int) bool {
	return s.Count(player, name) >= count
}

// Count returns how many of the named item player has collected.
func (s *State) Count(player PlayerID, name string) int {
	return s.counts[player][name]
}

// Checked reports whether the sweep has collected the item at loc.
func (s *State) Checked(loc *Location) bool {
	return s.checked[loc]
}

// Sweep repeatedly collects advancement items from reachable filled locations
// until nothing new becomes reachable. It returns the number of items collected
// and is a no-op once the state is at its fixpoint.
func (s *State) Sweep() int {
	total := 0
	for {
		found := 0
		for _, loc := range s.world.locations {
			if s.checked[loc] || loc.item == nil || !loc.item.Advancement {
				continue
			}
			if !loc.CanReach(s) {
				continue
			}
			s.checked[loc] = true
			s.Collect(loc.item)
			found++
		}
		if found == 0 {
			return total
		}
		total += found
	}
}

// Forget withdraws item, previously collected from loc, from the state.
// It returns false if loc was never collected.
func (s *State) Forget(loc *Location, item *Item) bool {
	if !s.checked[loc] {
		return false
	}
	delete(s.checked, loc)
	if c := s.counts[item.Player]; c[item.Name] > 0 {
		c[item.Name]--
	}
	return true
}

// Copy returns an independent copy of the state bound to the same world.
func (s *State) Copy() *State {
	cp := &State{
		world:   s.world,
		counts:  make(map[PlayerID]map[string]int, len(s.counts)),
		checked: make(map[*Location]bool, len(s.checked)),
	}
	for p, c := range s.counts {
		m := make(map[string]int, len(c))
		for k, v := range c {
			m[k] = v
		}
		cp.counts[p] = m
	}
	for l, v := range s.checked {
		cp.checked[l] = v
	}
	return cp
}
