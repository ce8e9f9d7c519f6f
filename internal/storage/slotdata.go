package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// SlotData is free-form per-player data carried from a seed into its result.
// Values are kept as raw JSON so game-specific payloads round trip untouched.
type SlotData map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (d *SlotData) Set(key string, v any) error {
	if *d == nil {
		*d = SlotData{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot data %q: %w", key, err)
	}

	(*d)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the value at key into out.
// Returns (found=false, nil) if not present.
func (d SlotData) Get(key string, out any) (bool, error) {
	raw, ok := d[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal slot data %q: %w", key, err)
	}
	return true, nil
}

// Keys returns the stored keys in sorted order.
func (d SlotData) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Clone returns a copy that does not share the underlying map.
func (d SlotData) Clone() SlotData {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}
