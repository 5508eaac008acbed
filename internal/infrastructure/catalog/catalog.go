// Package catalog loads the option lists offered by the registration form.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"go-vaccine-registration/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var defaultOptions []byte

// Default returns the embedded catalog.
func Default() (entity.OptionCatalog, error) {
	return Parse(defaultOptions, "embedded options.yaml")
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (entity.OptionCatalog, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return entity.OptionCatalog{}, fmt.Errorf("read options file %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes and validates a catalog document.  source names the document
// in error messages.
func Parse(raw []byte, source string) (entity.OptionCatalog, error) {
	var c entity.OptionCatalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return entity.OptionCatalog{}, fmt.Errorf("parse YAML %s: %w", source, err)
	}

	if err := validateCatalog(&c, source); err != nil {
		return entity.OptionCatalog{}, err
	}
	return c, nil
}

// validateCatalog enforces what the YAML tags cannot: the two select lists
// must be non-empty, and ids and values must be unique within a list.
func validateCatalog(c *entity.OptionCatalog, source string) error {
	if len(c.GroupPriorities) == 0 {
		return fmt.Errorf("options %s: 'group_priorities' must not be empty", source)
	}
	if len(c.Sessions) == 0 {
		return fmt.Errorf("options %s: 'sessions' must not be empty", source)
	}

	return errors.Join(
		checkList(c.GroupPriorities, "group_priorities", source),
		checkList(c.Sessions, "sessions", source),
		checkList(c.Attentions, "attentions", source),
	)
}

func checkList(list []entity.Option, name, source string) error {
	ids := make(map[int]struct{}, len(list))
	values := make(map[string]struct{}, len(list))

	for i, o := range list {
		if o.Value == "" {
			return fmt.Errorf("options %s: %s[%d] has an empty value", source, name, i)
		}
		if _, dup := ids[o.ID]; dup {
			return fmt.Errorf("options %s: duplicate id %d in '%s'", source, o.ID, name)
		}
		if _, dup := values[o.Value]; dup {
			return fmt.Errorf("options %s: duplicate value %q in '%s'", source, o.Value, name)
		}
		ids[o.ID] = struct{}{}
		values[o.Value] = struct{}{}
	}
	return nil
}
