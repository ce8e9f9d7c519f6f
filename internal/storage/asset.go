package storage

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// CurrentVersion is the asset envelope version written by Save.
const CurrentVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

// ValidatingSpec is any record that can check its own consistency.
type ValidatingSpec interface {
	Validate() error
}

// Identifier names a stored record. It doubles as the file name on disk.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Validate checks that the identifier is usable as a file name.
func (id Identifier) Validate() error {
	if id == "" {
		return fmt.Errorf("id must be set")
	}
	if !identifierPattern.MatchString(string(id)) {
		return fmt.Errorf("id must be alphanumeric")
	}
	return nil
}

// Asset is the versioned envelope every record is stored in.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	} else if a.Version > CurrentVersion {
		el.Add(fmt.Errorf("version %d is newer than supported version %d", a.Version, CurrentVersion))
	}

	el.Add(a.Identifier.Validate())

	if v := reflect.ValueOf(a.Spec); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}
