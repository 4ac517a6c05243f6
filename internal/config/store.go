// Package config loads and persists depth-of-field settings and the CLI's
// environment settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store is a sectioned key/value file kept as YAML:
//
//	DepthOfField:
//	  MaxBokehSize: 0.2
//	  Quality: 4
type Store struct {
	sections map[string]map[string]yaml.Node
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sections: make(map[string]map[string]yaml.Node)}
}

// LoadStore reads a store from path. A missing file yields an empty store.
func LoadStore(path string) (*Store, error) {
	s := NewStore()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.sections); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.sections == nil {
		s.sections = make(map[string]map[string]yaml.Node)
	}
	return s, nil
}

// Save writes the store to path, creating parent directories.
func (s *Store) Save(path string) error {
	data, err := yaml.Marshal(s.sections)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Has reports whether key is present in section.
func (s *Store) Has(section, key string) bool {
	_, ok := s.sections[section][key]
	return ok
}

func (s *Store) decode(section, key string, out any) bool {
	node, ok := s.sections[section][key]
	if !ok {
		return false
	}
	return node.Decode(out) == nil
}

// Float returns a float value.
func (s *Store) Float(section, key string) (float64, bool) {
	var v float64
	ok := s.decode(section, key, &v)
	return v, ok
}

// Int returns an int value.
func (s *Store) Int(section, key string) (int, bool) {
	var v int
	ok := s.decode(section, key, &v)
	return v, ok
}

// Bool returns a bool value.
func (s *Store) Bool(section, key string) (bool, bool) {
	var v bool
	ok := s.decode(section, key, &v)
	return v, ok
}

func (s *Store) set(section, key string, v any) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return
	}
	if s.sections[section] == nil {
		s.sections[section] = make(map[string]yaml.Node)
	}
	s.sections[section][key] = node
}

func (s *Store) SetFloat(section, key string, v float64) { s.set(section, key, v) }
func (s *Store) SetInt(section, key string, v int)       { s.set(section, key, v) }
func (s *Store) SetBool(section, key string, v bool)     { s.set(section, key, v) }
