package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tartampluch/go-biorhythm/internal/config"
	"gopkg.in/yaml.v3"
)

// Profile is a named reference date.
type Profile struct {
	Name string
	Date time.Time
}

// String is used by the profile select widget.
func (p Profile) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, FormatReferenceDate(p.Date))
}

// Equal compares name and calendar date exactly.
func (p Profile) Equal(o Profile) bool {
	return p.Name == o.Name && CivilDate(p.Date).Equal(CivilDate(o.Date))
}

// profileRecord is the on-disk shape. It matches the legacy JSON layout
// ({"name": ..., "date": "YYYY-MM-DD"}), which YAML also reads.
type profileRecord struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

// ProfileStore keeps the saved profiles and mirrors them to a file.
// The whole file is rewritten on every successful insert.
type ProfileStore struct {
	path string

	mu       sync.RWMutex
	profiles []Profile
}

// NewProfileStore creates a store bound to path. Call Load to read it.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// DefaultProfilesPath returns <user config dir>/<AppID>/profiles.yaml.
func DefaultProfilesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}
	return filepath.Join(dir, config.AppID, config.ProfilesFileName), nil
}

// Path returns the backing file.
func (s *ProfileStore) Path() string {
	return s.path
}

// Load reads the file. A missing or corrupt file yields an empty list;
// the problem is logged, never returned.
func (s *ProfileStore) Load() {
	log := slog.With(config.LogKeyComponent, config.CompStore, config.LogKeyFile, s.path)

	profiles, err := readProfiles(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug(config.ErrProfilesRead, config.LogKeyError, err)
		} else {
			log.Warn(config.ErrProfilesRead, config.LogKeyError, err)
		}
		profiles = nil
	}

	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()

	log.Info(config.MsgProfilesLoaded, config.LogKeyCount, len(profiles))
}

// Profiles returns a copy of the saved profiles in insertion order.
func (s *ProfileStore) Profiles() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Contains reports whether an equal profile is already saved.
func (s *ProfileStore) Contains(p Profile) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(p) >= 0
}

func (s *ProfileStore) indexOf(p Profile) int {
	for i, existing := range s.profiles {
		if existing.Equal(p) {
			return i
		}
	}
	return -1
}

// Add inserts p unless an equal profile exists, then rewrites the file.
// It returns false for duplicates. Write failures are logged and ignored.
func (s *ProfileStore) Add(p Profile) bool {
	return s.Merge([]Profile{p}) == 1
}

// Merge inserts every profile not already saved and writes the file once.
// It returns the number of profiles added.
func (s *ProfileStore) Merge(ps []Profile) int {
	s.mu.Lock()
	added := 0
	for _, p := range ps {
		p.Date = CivilDate(p.Date)
		if s.indexOf(p) >= 0 {
			slog.Debug(config.MsgProfileDup,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyName, p.Name,
				config.LogKeyDate, FormatReferenceDate(p.Date))
			continue
		}
		s.profiles = append(s.profiles, p)
		added++
	}
	snapshot := make([]Profile, len(s.profiles))
	copy(snapshot, s.profiles)
	s.mu.Unlock()

	if added == 0 {
		return 0
	}

	slog.Info(config.MsgProfileAdded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyCount, added)

	if err := writeProfiles(s.path, snapshot); err != nil {
		slog.Warn(config.ErrProfilesWrite,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyFile, s.path,
			config.LogKeyError, err)
	}
	return added
}

func readProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []profileRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrProfilesDecode, err)
	}

	profiles := make([]Profile, 0, len(records))
	for _, r := range records {
		date, err := ParseReferenceDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrProfilesDecode, err)
		}
		profiles = append(profiles, Profile{Name: r.Name, Date: date})
	}
	return profiles, nil
}

func writeProfiles(path string, profiles []Profile) error {
	if path == "" {
		return errors.New(config.ErrProfilesWrite)
	}

	records := make([]profileRecord, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, profileRecord{Name: p.Name, Date: FormatReferenceDate(p.Date)})
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrProfilesEncode, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return err
	}

	slog.Debug(config.MsgProfilesSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, path,
		config.LogKeyCount, len(profiles))
	return nil
}
