package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// File names inside the data directory.
const (
	groupsFile = "groups.json"
	usersFile  = "users.json"
	stateFile  = "state.json"
	cacheFile  = "cache.json"
)

// Store keeps all bot data in memory and persists each document kind to its
// own JSON file. Saves are atomic (temp write + rename) and serialized per
// kind by a dedicated mutex, so a handler and a background task never
// interleave writes to the same file.
type Store struct {
	dir             string
	defaultCooldown int

	groupsMu sync.Mutex
	groups   map[string]GroupData

	usersMu sync.Mutex
	users   map[string]UserData

	stateMu sync.Mutex
	state   StateData

	cacheMu sync.Mutex
	cache   CacheData
}

// Open loads all documents from dir, creating it if needed. Missing files
// yield empty defaults; corrupt files fall back to their .bak copy. New
// groups and records missing a cooldown get defaultCooldownSeconds
// (DefaultCooldownSeconds when non-positive).
func Open(dir string, defaultCooldownSeconds int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create data directory")
	}

	if defaultCooldownSeconds <= 0 {
		defaultCooldownSeconds = DefaultCooldownSeconds
	}
	s := &Store{
		dir:             dir,
		defaultCooldown: defaultCooldownSeconds,
		groups:          make(map[string]GroupData),
		users:           make(map[string]UserData),
		state:           newStateData(),
		cache:           newCacheData(),
	}

	if err := loadFile(s.path(groupsFile), &s.groups); err != nil {
		return nil, err
	}
	for key, group := range s.groups {
		if group.Config.CooldownSeconds < 0 {
			group.Config.CooldownSeconds = s.defaultCooldown
			s.groups[key] = group
		}
	}
	if err := loadFile(s.path(usersFile), &s.users); err != nil {
		return nil, err
	}
	if err := loadFile(s.path(stateFile), &s.state); err != nil {
		return nil, err
	}
	s.state.normalize()
	if err := loadFile(s.path(cacheFile), &s.cache); err != nil {
		return nil, err
	}
	s.cache.normalize()

	log.Debugf("storage ready: %d groups, %d users, %d live messages",
		len(s.groups), len(s.users), len(s.state.ActiveTimeMessages))
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// loadFile reads a JSON document into dst. A missing file leaves dst at its
// zero/default value. A corrupt file is retried from its .bak copy.
func loadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}

	if err := json.Unmarshal(data, dst); err == nil {
		return nil
	}

	log.Warnf("corrupt JSON in %s, trying backup", path)
	backup, berr := os.ReadFile(path + ".bak")
	if berr != nil {
		return errors.Errorf("corrupt JSON in %s and no usable backup", path)
	}
	if err := json.Unmarshal(backup, dst); err != nil {
		return errors.Wrapf(err, "corrupt JSON in %s and corrupt backup", path)
	}
	return nil
}

// saveFile atomically replaces path with the serialized form of src. The
// previous content is kept as path.bak. A crash mid-write leaves at most a
// stale .tmp file behind; the committed file is never partially written.
func saveFile(path string, src interface{}) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "could not marshal %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", tmp)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			log.Warnf("could not refresh backup for %s: %v", path, err)
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "could not replace %s", path)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func (s *Store) saveGroups() error {
	return saveFile(s.path(groupsFile), s.groups)
}

func (s *Store) saveUsers() error {
	return saveFile(s.path(usersFile), s.users)
}

func (s *Store) saveState() error {
	return saveFile(s.path(stateFile), s.state)
}

func (s *Store) saveCache() error {
	return saveFile(s.path(cacheFile), s.cache)
}

// FileStatus describes one persisted document for the health report.
type FileStatus struct {
	Status string
	Size   int64
}

// Integrity re-reads every document from disk and reports its condition,
// keyed by file name.
func (s *Store) Integrity() map[string]FileStatus {
	results := make(map[string]FileStatus)
	for _, file := range []string{groupsFile, usersFile, stateFile, cacheFile} {
		data, err := os.ReadFile(s.path(file))
		if os.IsNotExist(err) {
			results[file] = FileStatus{Status: "missing"}
			continue
		}
		if err != nil {
			results[file] = FileStatus{Status: "error"}
			continue
		}
		if !json.Valid(data) {
			results[file] = FileStatus{Status: "corrupted"}
			continue
		}
		results[file] = FileStatus{Status: "ok", Size: int64(len(data))}
	}
	return results
}
