package device

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry serves named capability profiles loaded from a directory of YAML
// files. It always carries the built-in default profile; directory profiles
// may shadow it by name. Reads are safe from any goroutine; Reload and the
// Watcher are the only writers.
type Registry struct {
	dir string

	mu       sync.RWMutex
	profiles map[string]*Capabilities
}

// NewRegistry creates a registry backed by dir. An empty dir yields a
// registry holding only the built-in default. The directory is scanned once;
// use Watch for hot reload.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{
		dir:      dir,
		profiles: map[string]*Capabilities{"default": Default()},
	}
	if dir != "" {
		if err := r.Reload(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Reload rescans the profile directory. Profiles that fail to parse are
// reported as one combined error; previously loaded profiles stay served.
func (r *Registry) Reload() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read profile directory %s: %w", r.dir, err)
	}

	loaded := make(map[string]*Capabilities)
	var failures []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		caps, err := LoadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		loaded[caps.Name] = caps
	}

	r.mu.Lock()
	for name, caps := range loaded {
		r.profiles[name] = caps
	}
	r.mu.Unlock()

	if len(failures) > 0 {
		return fmt.Errorf("failed to load %d profile(s): %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

// reloadFile loads a single changed profile file into the registry.
func (r *Registry) reloadFile(path string) error {
	caps, err := LoadFile(path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.profiles[caps.Name] = caps
	r.mu.Unlock()
	return nil
}

// Get returns the named profile, or false when unknown.
func (r *Registry) Get(name string) (*Capabilities, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	caps, ok := r.profiles[name]
	return caps, ok
}

// Names returns the sorted profile names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
