package multiworld

import "slices"

// Pool is the ordered multiset of items not yet assigned to a location.
type Pool struct {
	items []*Item
}

// NewPool creates a pool holding items in the given order.
func NewPool(items ...*Item) *Pool {
	return &Pool{items: slices.Clone(items)}
}

// Add appends items to the end of the pool.
func (p *Pool) Add(items ...*Item) {
	p.items = append(p.items, items...)
}

// Remove deletes item from the pool. Returns false if it was not present.
func (p *Pool) Remove(item *Item) bool {
	i := slices.Index(p.items, item)
	if i < 0 {
		return false
	}
	p.items = slices.Delete(p.items, i, i+1)
	return true
}

// Take removes and returns the first item matching player and name, or nil.
func (p *Pool) Take(player PlayerID, name string) *Item {
	i := slices.IndexFunc(p.items, func(it *Item) bool {
		return it.Player == player && it.Name == name
	})
	if i < 0 {
		return nil
	}
	it := p.items[i]
	p.items = slices.Delete(p.items, i, i+1)
	return it
}

// Contains reports whether item is in the pool.
func (p *Pool) Contains(item *Item) bool {
	return slices.Contains(p.items, item)
}

// Items returns a copy of the pool contents in order.
func (p *Pool) Items() []*Item {
	return slices.Clone(p.items)
}

func (p *Pool) Len() int {
	return len(p.items)
}
