package config

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pelletier/go-toml"
)

func parseToml(r io.Reader, strict bool, cfg *Config) error {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return err
	}

	validKeys := map[string]struct{}{}
	for _, option := range cfg.options() {
		key, ok := option.getTomlKey()
		if !ok {
			continue
		}
		validKeys[key] = struct{}{}
		value := tree.Get(key)
		if value == nil {
			continue
		}
		if err := option.setValue(value); err != nil {
			return err
		}
	}

	// the file may enable strict parsing itself
	if strict || cfg.Strict {
		for _, key := range tree.Keys() {
			if _, ok := validKeys[key]; !ok {
				return fmt.Errorf("invalid config: unexpected entry specified in toml file %q", key)
			}
		}
	}

	return nil
}

// MarshalTOML renders the current configuration as a toml document, with
// each option's usage as a comment.
func (cfg *Config) MarshalTOML() ([]byte, error) {
	tree, err := toml.TreeFromMap(map[string]interface{}{})
	if err != nil {
		return nil, err
	}

	for _, option := range cfg.options() {
		key, ok := option.getTomlKey()
		if !ok {
			continue
		}

		v, err := option.marshalTOML()
		if err != nil {
			return nil, err
		}

		// options without a value are left commented out
		commented := v == nil || reflect.ValueOf(v).IsZero()
		tree.SetWithComment(key, option.Usage, commented, v)
	}

	return tree.Marshal()
}
