package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-multifill/internal/seed"
	"github.com/pixil98/go-multifill/internal/storage"
)

type StorageConfig struct {
	Seeds   AssetConfig[*seed.Spec]   `json:"seeds"`
	Results AssetConfig[*seed.Result] `json:"results"`

	// Directory player options files are resolved against. Defaults to the seeds path.
	Options string `json:"options"`
	// Directory spoiler logs are written to. Empty disables spoilers.
	Spoilers string `json:"spoilers"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Seeds.Validate("seeds"))
	el.Add(c.Results.Validate("results"))
	if c.Options != "" {
		el.Add(validateDir("options", c.Options))
	}
	if c.Spoilers != "" {
		el.Add(validateDir("spoilers", c.Spoilers))
	}
	return el.Err()
}

func (c *StorageConfig) optionsDir() string {
	if c.Options != "" {
		return c.Options
	}
	return c.Seeds.Path
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	return validateDir(name, c.Path)
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

func validateDir(name string, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %q is not a directory", name, path)
	}
	return nil
}
