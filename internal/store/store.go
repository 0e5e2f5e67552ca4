// Package store persists app groups to a JSON file in the app data
// directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"appdock/internal/appentry"
	"appdock/internal/group"
	"appdock/internal/log"
)

// FileName is the group store file inside the data directory.
const FileName = "app_groups.json"

// GroupStore keeps the group list in memory and mirrors every mutation
// to disk. Persistence failures are logged and swallowed so a broken
// disk never takes the launcher down.
type GroupStore struct {
	rt   *appentry.Runtime
	path string

	mu     sync.Mutex
	groups []*group.Group
}

// New builds a store over the file at dir/app_groups.json.
func New(rt *appentry.Runtime, dir string) *GroupStore {
	return &GroupStore{rt: rt, path: filepath.Join(dir, FileName)}
}

// Path returns the backing file path.
func (s *GroupStore) Path() string { return s.path }

// Load reads the store file. A missing file yields an empty list, and
// so does a file that fails to decode. After a successful load the
// list is saved straight back, which migrates the file to the current
// wire shape.
func (s *GroupStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.ErrorErr(log.CatStore, "could not read group store", err, "path", s.path)
		}
		s.groups = nil
		return
	}

	groups, err := decode(data, s.rt)
	if err != nil {
		log.ErrorErr(log.CatStore, "could not decode group store", err, "path", s.path)
		s.groups = nil
		return
	}

	s.groups = groups
	s.saveLocked()
}

// Groups returns a snapshot of the current list.
func (s *GroupStore) Groups() []*group.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*group.Group(nil), s.groups...)
}

// Find returns the group with the given name, or nil.
func (s *GroupStore) Find(name string) *group.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

// Add appends a group and persists. A group whose name is already
// taken is rejected.
func (s *GroupStore) Add(g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.groups {
		if existing.Name() == g.Name() {
			return fmt.Errorf("group %q already exists", g.Name())
		}
	}
	s.groups = append(s.groups, g)
	s.saveLocked()
	return nil
}

// Replace swaps the named group for a new value and persists. Edits
// go clone, mutate, Replace; groups in the list are never mutated in
// place.
func (s *GroupStore) Replace(name string, g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.groups {
		if existing.Name() == name {
			s.groups[i] = g
			s.saveLocked()
			return nil
		}
	}
	return fmt.Errorf("no group named %q", name)
}

// Remove drops the named group and persists. Reports whether a group
// was removed.
func (s *GroupStore) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.groups {
		if g.Name() == name {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			s.saveLocked()
			return true
		}
	}
	return false
}

// Save persists the current list.
func (s *GroupStore) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked()
}

func (s *GroupStore) saveLocked() {
	data, err := encode(s.groups)
	if err != nil {
		log.ErrorErr(log.CatStore, "could not encode group store", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.ErrorErr(log.CatStore, "could not create data directory", err, "path", s.path)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.ErrorErr(log.CatStore, "could not write group store", err, "path", s.path)
	}
}

func encode(groups []*group.Group) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(groups))
	for _, g := range groups {
		raw, err := group.Marshal(g)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.MarshalIndent(raws, "", "  ")
}

func decode(data []byte, rt *appentry.Runtime) ([]*group.Group, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	groups := make([]*group.Group, 0, len(raws))
	for _, raw := range raws {
		g, err := group.Unmarshal(raw, rt)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}
