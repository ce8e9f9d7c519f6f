package multiworld

// Rule is a reachability predicate evaluated against a collection state.
type Rule interface {
	Satisfied(*State) bool
}

// RuleFunc adapts a plain function to a Rule.
type RuleFunc func(*State) bool

func (f RuleFunc) Satisfied(s *State) bool {
	return f(s)
}

// Requirement is satisfied when the player has collected at least the listed
// count of every named item.
type Requirement struct {
	Player PlayerID
	Items  map[string]int
}

func (r Requirement) Satisfied(s *State) bool {
	for name, count := range r.Items {
		if !s.Has(r.Player, name, count) {
			return false
		}
	}
	return true
}

// Always is a rule that is always satisfied.
var Always Rule = RuleFunc(func(*State) bool { return true })
