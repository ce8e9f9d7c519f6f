package storage

import (
	"fmt"
	"strings"
	"testing"
)

// testSpec is a simple ValidatingSpec for testing
type testSpec struct {
	valid bool
}

func (s *testSpec) Validate() error {
	if !s.valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset   Asset[*testSpec]
		expErrs []string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{Version: 1, Identifier: "seed-1", Spec: &testSpec{valid: true}},
		},
		"version not set": {
			asset:   Asset[*testSpec]{Version: 0, Identifier: "seed-1", Spec: &testSpec{valid: true}},
			expErrs: []string{"version must be set"},
		},
		"version from the future": {
			asset:   Asset[*testSpec]{Version: 9, Identifier: "seed-1", Spec: &testSpec{valid: true}},
			expErrs: []string{"newer than supported"},
		},
		"empty identifier": {
			asset:   Asset[*testSpec]{Version: 1, Identifier: "", Spec: &testSpec{valid: true}},
			expErrs: []string{"id must be set"},
		},
		"identifier with path separator": {
			asset:   Asset[*testSpec]{Version: 1, Identifier: "../seed", Spec: &testSpec{valid: true}},
			expErrs: []string{"id must be alphanumeric"},
		},
		"missing spec": {
			asset:   Asset[*testSpec]{Version: 1, Identifier: "seed-1"},
			expErrs: []string{"spec must be set"},
		},
		"invalid spec": {
			asset:   Asset[*testSpec]{Version: 1, Identifier: "seed-1", Spec: &testSpec{valid: false}},
			expErrs: []string{"spec is invalid"},
		},
		"multiple errors": {
			asset: Asset[*testSpec]{Version: 0, Identifier: "", Spec: &testSpec{valid: false}},
			expErrs: []string{
				"version must be set",
				"id must be set",
				"spec is invalid",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected errors %v, got nil", tt.expErrs)
				return
			}

			errStr := err.Error()
			for _, e := range tt.expErrs {
				if !strings.Contains(errStr, e) {
					t.Errorf("error %q does not contain %q", errStr, e)
				}
			}
		})
	}
}
